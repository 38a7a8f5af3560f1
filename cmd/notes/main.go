// Command notes is a terminal client for the Notes Studio API.
//
//	notes signup -email you@example.com -password secret [-name "Your Name"]
//	notes login -email you@example.com -password secret
//	notes ls | show ID | new -title T -content C | edit ID [-title T] [-content C] | rm ID
//	notes whoami | logout | prefs [-muted=true] [-theme devops] | links
//
// NOTES_API_URL, NOTES_STATE_FILE and NOTES_HTTP_TIMEOUT configure the client.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
