package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/julianstephens/dayweave/internal/storage"
)

// Config is the environment-driven workspace configuration. Flags may
// override individual fields after parsing.
type Config struct {
	// Root is the workspace directory; defaults to ~/dayweave.
	Root string `env:"DAYWEAVE_ROOT"`
	// Store selects the backend: empty for the file workspace, or a path
	// ending in .db for the single-file SQLite backend.
	Store string `env:"DAYWEAVE_STORE"`
	Debug bool   `env:"DAYWEAVE_DEBUG"`
	// LogDir overrides where rotated logs are written.
	LogDir string `env:"DAYWEAVE_LOG_DIR"`
	// DisableHooks turns off hook execution regardless of hooks.yaml.
	DisableHooks bool `env:"DAYWEAVE_NO_HOOKS"`
}

// LoadConfig reads configuration from the environment and fills defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		cfg.Root = filepath.Join(home, "dayweave")
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Join(cfg.Root, "logs")
	}
	return cfg, nil
}

// OpenProvider selects the storage backend for the configuration. A .db
// store path picks SQLite; anything else uses the file workspace.
func OpenProvider(cfg Config) storage.Provider {
	if strings.HasSuffix(cfg.Store, ".db") {
		path := cfg.Store
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Root, path)
		}
		return storage.NewSQLiteStore(path)
	}
	return storage.NewFileStore(cfg.Root)
}
