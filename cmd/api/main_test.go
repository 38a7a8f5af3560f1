package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/notes-studio/notes-api/internal/infrastructure/config"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		Port:      "0",
		JWTSecret: "main-test-secret",
		TokenTTL:  time.Hour,
		Store:     config.StoreConfig{Driver: driver},
	}
}

func TestRun_UnknownDriver(t *testing.T) {
	err := run(context.Background(), testConfig("cassandra"), zerolog.Nop())
	if err == nil || !strings.Contains(err.Error(), "unknown store driver") {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
}

func TestRun_ShutsDownWhenContextEnds(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, testConfig(config.DriverMemory), zerolog.Nop()) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown, got %v", err)
		}
	case <-time.After(shutdownTimeout):
		t.Fatal("run did not return after cancel")
	}
}
