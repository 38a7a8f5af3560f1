package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/notes-studio/notes-api/internal/api"
	"github.com/notes-studio/notes-api/internal/core/service"
	"github.com/notes-studio/notes-api/internal/infrastructure/config"
	"github.com/notes-studio/notes-api/internal/infrastructure/db/memory"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := zerolog.Nop()
	reg := prometheus.NewRegistry()
	srv := httptest.NewServer(api.NewRouter(api.Deps{
		Auth:       service.NewAuthService(memory.NewUserRepository(), memory.NewRevoker(), "cli-secret", time.Hour, log),
		Notes:      service.NewNoteService(memory.NewNoteRepository(), log),
		Logger:     log,
		OpsLinks:   api.OpsLinks(config.OpsConfig{GrafanaURL: "http://localhost:80", PrometheusURL: "http://localhost:9090", JenkinsURL: "http://localhost:8080"}),
		Registerer: reg,
		Gatherer:   reg,
	}))
	t.Cleanup(srv.Close)
	return srv
}

// cli points every invocation at the same server and state file.
func cli(t *testing.T, baseURL string) func(args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("NOTES_API_URL", baseURL)
	t.Setenv("NOTES_STATE_FILE", filepath.Join(t.TempDir(), "state.yaml"))
	return func(args ...string) (int, string, string) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), args, &stdout, &stderr)
		return code, stdout.String(), stderr.String()
	}
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), nil, &stdout, &stderr); code != exitUsage {
		t.Fatalf("expected %d, got %d", exitUsage, code)
	}
	if !strings.Contains(stderr.String(), "notes ls") {
		t.Fatalf("expected usage listing, got %q", stderr.String())
	}

	stderr.Reset()
	if code := run(context.Background(), []string{"frobnicate"}, &stdout, &stderr); code != exitUsage {
		t.Fatalf("expected %d for unknown command, got %d", exitUsage, code)
	}
}

func TestRun_WithoutSessionAsksForLogin(t *testing.T) {
	notes := cli(t, newServer(t).URL)

	for _, args := range [][]string{{"ls"}, {"whoami"}, {"show", "1"}} {
		code, _, stderr := notes(args...)
		if code != exitAuth {
			t.Fatalf("%v: expected exit %d, got %d", args, exitAuth, code)
		}
		if !strings.Contains(stderr, sessionGone) {
			t.Fatalf("%v: expected %q, got %q", args, sessionGone, stderr)
		}
	}
}

func TestRun_NoteLifecycle(t *testing.T) {
	notes := cli(t, newServer(t).URL)

	if code, out, errOut := notes("signup", "-email", "p3@gmail.com", "-password", "123456"); code != exitOK || !strings.Contains(out, "p3@gmail.com") {
		t.Fatalf("signup: code=%d out=%q err=%q", code, out, errOut)
	}
	if code, out, _ := notes("whoami"); code != exitOK || !strings.Contains(out, "p3@gmail.com") {
		t.Fatalf("whoami: code=%d out=%q", code, out)
	}
	if code, out, _ := notes("new", "-title", "Untitled"); code != exitOK || !strings.Contains(out, "created note 1") {
		t.Fatalf("new: code=%d out=%q", code, out)
	}
	if code, _, _ := notes("edit", "1", "-content", "milk, eggs"); code != exitOK {
		t.Fatalf("edit: code=%d", code)
	}

	code, out, _ := notes("show", "1")
	if code != exitOK || !strings.Contains(out, "#1 Untitled") || !strings.Contains(out, "milk, eggs") {
		t.Fatalf("show: code=%d out=%q", code, out)
	}

	code, out, _ = notes("ls")
	if code != exitOK || !strings.Contains(out, "Untitled") {
		t.Fatalf("ls: code=%d out=%q", code, out)
	}

	if code, _, _ := notes("rm", "1"); code != exitOK {
		t.Fatalf("rm: code=%d", code)
	}
	if code, _, errOut := notes("show", "1"); code != exitError || !strings.Contains(errOut, "note not found") {
		t.Fatalf("show after rm: code=%d err=%q", code, errOut)
	}

	if code, _, _ := notes("logout"); code != exitOK {
		t.Fatalf("logout: code=%d", code)
	}
	if code, _, _ := notes("ls"); code != exitAuth {
		t.Fatalf("ls after logout: expected %d, got %d", exitAuth, code)
	}
}

func TestRun_LoginFailureShowsServerDetail(t *testing.T) {
	notes := cli(t, newServer(t).URL)

	code, _, errOut := notes("login", "-email", "nobody@example.com", "-password", "123456")
	if code != exitError || !strings.Contains(errOut, "Incorrect email or password") {
		t.Fatalf("code=%d err=%q", code, errOut)
	}
}

func TestRun_Prefs(t *testing.T) {
	notes := cli(t, newServer(t).URL)

	code, out, _ := notes("prefs", "-muted=true", "-theme", "devops")
	if code != exitOK || !strings.Contains(out, "muted: true") || !strings.Contains(out, "wallpaper_theme: devops") {
		t.Fatalf("prefs: code=%d out=%q", code, out)
	}

	code, out, _ = notes("prefs")
	if code != exitOK || !strings.Contains(out, "wallpaper_theme: devops") {
		t.Fatalf("prefs should persist: code=%d out=%q", code, out)
	}

	if code, _, _ := notes("prefs", "-theme", "neon"); code != exitError {
		t.Fatalf("expected error for unknown theme, got %d", code)
	}
}

func TestRun_Links(t *testing.T) {
	notes := cli(t, newServer(t).URL)

	code, out, _ := notes("links")
	if code != exitOK || !strings.Contains(out, "http://localhost:9090") {
		t.Fatalf("links: code=%d out=%q", code, out)
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID([]string{"42"}); err != nil || id != 42 {
		t.Fatalf("got %d, %v", id, err)
	}
	for _, args := range [][]string{nil, {"abc"}, {"0"}, {"-3"}} {
		if _, err := parseID(args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}
