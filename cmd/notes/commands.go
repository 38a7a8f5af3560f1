package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"

	"github.com/notes-studio/notes-api/pkg/logger"
	"github.com/notes-studio/notes-api/pkg/notesclient"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitAuth  = 2
	exitUsage = 64
)

const sessionGone = "session expired, please log in"

type app struct {
	client *notesclient.Client
	out    io.Writer
	log    zerolog.Logger
}

type command struct {
	usage string
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"signup": {"signup -email E -password P [-name N]", cmdSignup},
	"login":  {"login -email E -password P", cmdLogin},
	"logout": {"logout", cmdLogout},
	"whoami": {"whoami", cmdWhoami},
	"ls":     {"ls", cmdList},
	"new":    {"new [-title T] [-content C]", cmdNew},
	"show":   {"show ID", cmdShow},
	"edit":   {"edit ID [-title T] [-content C]", cmdEdit},
	"rm":     {"rm ID", cmdRemove},
	"prefs":  {"prefs [-muted=true|false] [-theme hacker|devops|clean]", cmdPrefs},
	"links":  {"links", cmdLinks},
}

// errUsage marks a command line the user has to fix.
var errUsage = errors.New("usage")

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	log := logger.Init(logger.Options{Level: "warn", Pretty: true, Output: stderr, Service: "notes-cli"})

	if len(args) == 0 {
		printUsage(stderr)
		return exitUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		printUsage(stderr)
		return exitUsage
	}

	cfg, err := notesclient.LoadConfig(ctx)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	sessions, err := notesclient.NewSessionManager(cfg, notesclient.NewFileStore(cfg.StateFile))
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	a := &app{client: notesclient.NewClient(cfg, sessions), out: stdout, log: log}

	err = cmd.run(ctx, a, args[1:])
	return report(err, cmd, stderr)
}

// report prints err and picks the exit code. Losing the session, whether it
// was never there or the server rejected it, always means "log in again".
func report(err error, cmd command, stderr io.Writer) int {
	var authErr *notesclient.AuthError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, notesclient.ErrNoSession), errors.Is(err, notesclient.ErrUnauthorized):
		fmt.Fprintln(stderr, sessionGone)
		return exitAuth
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, "usage: notes "+cmd.usage)
		return exitUsage
	case errors.Is(err, notesclient.ErrNotFound):
		fmt.Fprintln(stderr, "note not found")
		return exitError
	case errors.As(err, &authErr):
		fmt.Fprintln(stderr, authErr.Detail)
		return exitError
	default:
		fmt.Fprintln(stderr, err)
		return exitError
	}
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "usage:")
	for _, name := range names {
		fmt.Fprintln(w, "  notes "+commands[name].usage)
	}
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func cmdSignup(ctx context.Context, a *app, args []string) error {
	fs := newFlags("signup")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "full name (optional)")
	if err := fs.Parse(args); err != nil || *email == "" || *password == "" {
		return errUsage
	}

	sess, err := a.client.Sessions().Register(ctx, *name, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "signed up as %s (id %d)\n", sess.User.Email, sess.User.ID)
	return nil
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil || *email == "" || *password == "" {
		return errUsage
	}

	sess, err := a.client.Sessions().Authenticate(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "logged in as %s\n", sess.User.Email)
	return nil
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.client.Logout(ctx); err != nil {
		a.log.Warn().Err(err).Msg("server-side logout failed, local session cleared")
	}
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func cmdWhoami(_ context.Context, a *app, _ []string) error {
	sess := a.client.Sessions().CurrentSession()
	if sess == nil {
		return notesclient.ErrNoSession
	}
	if sess.User.FullName != "" {
		fmt.Fprintf(a.out, "%s <%s> (id %d)\n", sess.User.FullName, sess.User.Email, sess.User.ID)
		return nil
	}
	fmt.Fprintf(a.out, "%s (id %d)\n", sess.User.Email, sess.User.ID)
	return nil
}

func cmdList(ctx context.Context, a *app, _ []string) error {
	notes, err := a.client.List(ctx)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "no notes yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tUPDATED")
	for _, n := range notes {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", n.ID, n.Title, n.UpdatedAt.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

func cmdNew(ctx context.Context, a *app, args []string) error {
	fs := newFlags("new")
	title := fs.String("title", "", "note title")
	content := fs.String("content", "", "note body")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	n, err := a.client.Create(ctx, *title, *content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created note %d %q\n", n.ID, n.Title)
	return nil
}

func cmdShow(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	n, err := a.client.Read(ctx, id)
	if err != nil {
		return err
	}
	printNote(a.out, n)
	return nil
}

// cmdEdit keeps whichever of title and content was not given on the command line.
func cmdEdit(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	fs := newFlags("edit")
	title := fs.String("title", "", "new title")
	content := fs.String("content", "", "new body")
	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if len(set) == 0 {
		return errUsage
	}

	current, err := a.client.Read(ctx, id)
	if err != nil {
		return err
	}
	if !set["title"] {
		*title = current.Title
	}
	if !set["content"] {
		*content = current.Content
	}

	n, err := a.client.Update(ctx, id, *title, *content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "updated note %d\n", n.ID)
	return nil
}

func cmdRemove(ctx context.Context, a *app, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := a.client.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "deleted note %d\n", id)
	return nil
}

func cmdPrefs(_ context.Context, a *app, args []string) error {
	fs := newFlags("prefs")
	muted := fs.Bool("muted", false, "mute interface sounds")
	theme := fs.String("theme", "", "wallpaper theme")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	sessions := a.client.Sessions()
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "muted":
			err = sessions.SetMuted(*muted)
		case "theme":
			var t notesclient.WallpaperTheme
			if t, err = notesclient.ParseWallpaperTheme(*theme); err == nil {
				err = sessions.SetWallpaperTheme(t)
			}
		}
	})
	if err != nil {
		return err
	}

	p := sessions.Preferences()
	fmt.Fprintf(a.out, "muted: %t\nwallpaper_theme: %s\n", p.Muted, p.WallpaperTheme)
	return nil
}

func cmdLinks(ctx context.Context, a *app, _ []string) error {
	links, err := a.client.OpsLinks(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, l := range links {
		fmt.Fprintf(tw, "%s\t%s\n", l.Name, l.URL)
	}
	return tw.Flush()
}

func parseID(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: note id must be a positive integer", errUsage)
	}
	return id, nil
}

func printNote(w io.Writer, n *notesclient.Note) {
	fmt.Fprintf(w, "#%d %s\n", n.ID, n.Title)
	fmt.Fprintf(w, "created %s, updated %s\n", n.CreatedAt.Local().Format(time.DateTime), n.UpdatedAt.Local().Format(time.DateTime))
	if body := strings.TrimRight(n.Content, "\n"); body != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, body)
	}
}
