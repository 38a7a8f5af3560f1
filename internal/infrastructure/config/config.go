package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// DefaultJWTSecret is only acceptable outside production.
const DefaultJWTSecret = "CHANGE_ME_IN_PRODUCTION"

// Store drivers accepted by STORE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Port      string        `env:"PORT,      default=8000"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, default=CHANGE_ME_IN_PRODUCTION"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=60m"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// SeedWelcomeNote gives every new account a welcome note.
	SeedWelcomeNote bool     `env:"SEED_WELCOME_NOTE, default=false"`
	CORSOrigins     []string `env:"CORS_ORIGINS, default=http://localhost:3000,http://127.0.0.1:3000"`

	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
	Ops   OpsConfig
}

type StoreConfig struct {
	Driver      string `env:"STORE_DRIVER, default=sqlite"`
	SQLitePath  string `env:"SQLITE_PATH,  default=./notes.db"`
	DatabaseURL string `env:"DATABASE_URL"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=notes_studio"`
}

// RedisConfig is optional: an empty Addr keeps token revocation in memory.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// OpsConfig holds the external tool links served on the dashboard.
type OpsConfig struct {
	GrafanaURL    string `env:"GRAFANA_URL,    default=http://localhost:80"`
	PrometheusURL string `env:"PROMETHEUS_URL, default=http://localhost:9090"`
	JenkinsURL    string `env:"JENKINS_URL,    default=http://localhost:8080"`
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production") || strings.EqualFold(c.Env, "prod")
}

// Validate rejects combinations that cannot start.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite, DriverMongo, DriverMemory:
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return errors.New("config: DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		return errors.New("config: JWT_SECRET must be set in production")
	}
	return nil
}

// Load reads an optional .env file, then environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
