// Package config provides configuration management for promptstitch.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// Store backend selectors.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":5000"

// DefaultAIModel is the completion model used by the prompt generator.
const DefaultAIModel = "gpt-4o-mini"

// Config holds all runtime configuration, populated from the environment.
// The AI_INTEGRATIONS_* variable names match the completion-provider
// integration contract and are looked up verbatim, without the app prefix.
type Config struct {
	Addr         string `envconfig:"PROMPTSTITCH_ADDR" default:":5000"`
	LogLevel     string `envconfig:"PROMPTSTITCH_LOG_LEVEL" default:"info"`
	StoreBackend string `envconfig:"PROMPTSTITCH_STORE" default:"memory"`
	SQLitePath   string `envconfig:"PROMPTSTITCH_SQLITE_PATH"`

	AIBaseURL string `envconfig:"AI_INTEGRATIONS_OPENAI_BASE_URL"`
	AIAPIKey  string `envconfig:"AI_INTEGRATIONS_OPENAI_API_KEY"`
	AIModel   string `envconfig:"PROMPTSTITCH_AI_MODEL" default:"gpt-4o-mini"`
}

// Default returns the built-in configuration without consulting the
// environment.
func Default() *Config {
	return &Config{
		Addr:         DefaultAddr,
		LogLevel:     "info",
		StoreBackend: BackendMemory,
		SQLitePath:   DBPath(),
		AIModel:      DefaultAIModel,
	}
}

// Load reads configuration from the environment and fills path defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = DBPath()
	}
	switch cfg.StoreBackend {
	case BackendMemory, BackendSQLite:
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	return &cfg, nil
}

// AIConfigured reports whether both completion-provider values are present.
// Their absence is a configuration error surfaced as 503 by the generation
// endpoint, never a crash.
func (c *Config) AIConfigured() bool {
	return c.AIBaseURL != "" && c.AIAPIKey != ""
}

// DataDir returns the promptstitch data directory.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".promptstitch")
}

// DBPath returns the default SQLite database path.
func DBPath() string {
	return filepath.Join(DataDir(), "promptstitch.db")
}

// EnsureDataDir creates the data directory if it does not exist.
func EnsureDataDir() error {
	return os.MkdirAll(DataDir(), 0o755)
}
