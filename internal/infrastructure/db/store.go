// Package db selects the persistence backends named in the configuration.
package db

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/notes-studio/notes-api/internal/core/ports"
	"github.com/notes-studio/notes-api/internal/infrastructure/config"
	"github.com/notes-studio/notes-api/internal/infrastructure/db/memory"
	"github.com/notes-studio/notes-api/internal/infrastructure/db/mongo"
	"github.com/notes-studio/notes-api/internal/infrastructure/db/postgres"
	"github.com/notes-studio/notes-api/internal/infrastructure/db/redis"
	"github.com/notes-studio/notes-api/internal/infrastructure/db/sqlite"
)

// Store bundles the repositories of one backend with its lifecycle hooks.
type Store struct {
	Driver string
	Users  ports.UserRepository
	Notes  ports.NoteRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

// Ping reports whether the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewMemoryStore returns a fresh in-process store.
func NewMemoryStore() *Store {
	return &Store{
		Driver: config.DriverMemory,
		Users:  memory.NewUserRepository(),
		Notes:  memory.NewNoteRepository(),
	}
}

// Open connects to the configured backend and applies its schema.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return NewMemoryStore(), nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.Store.SQLitePath).Msg("sqlite store ready")
		return &Store{
			Driver: config.DriverSQLite,
			Users:  sqlite.NewUserRepository(db),
			Notes:  sqlite.NewNoteRepository(db),
			ping:   db.PingContext,
			close:  func(context.Context) error { return db.Close() },
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("postgres store ready")
		return &Store{
			Driver: config.DriverPostgres,
			Users:  postgres.NewUserRepository(pool),
			Notes:  postgres.NewNoteRepository(pool),
			ping:   pool.Ping,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.DriverMongo:
		client, mdb, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongo store ready")
		return &Store{
			Driver: config.DriverMongo,
			Users:  mongo.NewUserRepository(mdb),
			Notes:  mongo.NewNoteRepository(mdb),
			ping:   func(ctx context.Context) error { return client.Ping(ctx, nil) },
			close:  client.Disconnect,
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// Revocation is the token deny list plus its lifecycle hooks.
type Revocation struct {
	Backend string
	Revoker ports.TokenRevoker

	client *goredis.Client
}

func (r *Revocation) Ping(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return redis.Ping(ctx, r.client)
}

func (r *Revocation) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

// OpenRevocation uses Redis when REDIS_ADDR is set and an in-memory list otherwise.
func OpenRevocation(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*Revocation, error) {
	if cfg.Addr == "" {
		log.Info().Msg("REDIS_ADDR not set, token revocation kept in memory")
		return &Revocation{Backend: "memory", Revoker: memory.NewRevoker()}, nil
	}
	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("addr", cfg.Addr).Msg("redis token revocation ready")
	return &Revocation{Backend: "redis", Revoker: redis.NewRevoker(client), client: client}, nil
}
