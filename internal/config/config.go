package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/utils"
)

// Config is the environment-level configuration. Command-line flags override
// these values when set.
type Config struct {
	// DB is a database path or PostgreSQL URL without credentials.
	DB string `env:"STREAKLY_DB"`
	// DBConnection is a PostgreSQL connection string that may carry a password.
	DBConnection string        `env:"STREAKLY_DB_CONNECTION"`
	Debug        bool          `env:"STREAKLY_DEBUG"`
	Timezone     string        `env:"STREAKLY_TIMEZONE" envDefault:"Local"`
	FetchTimeout time.Duration `env:"STREAKLY_FETCH_TIMEOUT" envDefault:"2s"`
	OTelEndpoint string        `env:"STREAKLY_OTEL_ENDPOINT"`
	OTelEnabled  bool          `env:"STREAKLY_OTEL_ENABLED" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the environment configuration.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := utils.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("STREAKLY_TIMEZONE: %w", err)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("STREAKLY_FETCH_TIMEOUT must be positive, got %s", c.FetchTimeout)
	}
	return nil
}

// Target resolves where data lives. An explicit flag wins, then
// STREAKLY_DB, then the default database path. A connection string from
// STREAKLY_DB_CONNECTION is handled separately because it may carry secrets.
func (c Config) Target(flag string) string {
	switch {
	case flag != "":
		return flag
	case c.DB != "":
		return c.DB
	default:
		return constants.DefaultConfigPath
	}
}

// WithTimezone returns the flag timezone when set, else the configured one.
func (c Config) WithTimezone(flag string) string {
	if flag != "" {
		return flag
	}
	if c.Timezone == "" {
		return constants.DefaultTimezone
	}
	return c.Timezone
}
