// Command api serves the Notes Studio REST API.
//
// @title                       Notes Studio API
// @version                     1.0
// @description                 Authentication and personal note CRUD behind bearer tokens.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/notes-studio/notes-api/internal/api"
	"github.com/notes-studio/notes-api/internal/api/handler"
	"github.com/notes-studio/notes-api/internal/core/service"
	"github.com/notes-studio/notes-api/internal/infrastructure/config"
	"github.com/notes-studio/notes-api/internal/infrastructure/db"
	"github.com/notes-studio/notes-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "notes-api"})
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "notes-api",
	})
	if cfg.JWTSecret == config.DefaultJWTSecret {
		log.Warn().Msg("JWT_SECRET is the development default, set it before exposing the API")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("notes api stopped")
	}
}

// run serves until ctx is cancelled, then shuts the server down gracefully.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, err := db.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	revocation, err := db.OpenRevocation(ctx, cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("open token revocation: %w", err)
	}
	defer revocation.Close()

	notes := service.NewNoteService(store.Notes, log)
	auth := service.NewAuthService(store.Users, revocation.Revoker, cfg.JWTSecret, cfg.TokenTTL, log)
	if cfg.SeedWelcomeNote {
		auth.WithWelcomeNote(notes)
	}

	checks := map[string]handler.Checker{store.Driver: store.Ping}
	if revocation.Backend == "redis" {
		checks["redis"] = revocation.Ping
	}

	e := api.NewRouter(api.Deps{
		Auth:        auth,
		Notes:       notes,
		Logger:      log,
		CORSOrigins: cfg.CORSOrigins,
		OpsLinks:    api.OpsLinks(cfg.Ops),
		Checks:      checks,
	})

	addr := ":" + cfg.Port
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("store", store.Driver).Str("revocation", revocation.Backend).Msg("notes api listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve %s: %w", addr, err)
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
