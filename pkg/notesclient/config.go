package notesclient

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is read from the environment by LoadConfig.
type Config struct {
	BaseURL     string        `env:"NOTES_API_URL, default=http://localhost:8000"`
	StateFile   string        `env:"NOTES_STATE_FILE"`
	HTTPTimeout time.Duration `env:"NOTES_HTTP_TIMEOUT, default=15s"`
}

// LoadConfig reads NOTES_* variables. An empty NOTES_STATE_FILE resolves to
// <user config dir>/notes-studio/state.yaml.
func LoadConfig(ctx context.Context) (Config, error) {
	return loadConfig(ctx, envconfig.OsLookuper())
}

func loadConfig(ctx context.Context, lookuper envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return Config{}, fmt.Errorf("notesclient: load config: %w", err)
	}
	if cfg.StateFile == "" {
		path, err := DefaultStateFile()
		if err != nil {
			return Config{}, err
		}
		cfg.StateFile = path
	}
	return cfg, nil
}

// DefaultStateFile is where the session and preferences live unless overridden.
func DefaultStateFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("notesclient: locate config dir: %w", err)
	}
	return filepath.Join(dir, "notes-studio", "state.yaml"), nil
}
