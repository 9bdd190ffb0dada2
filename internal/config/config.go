// Package config loads the portfolio server configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Sink drivers accepted by CONTACT_SINK.
const (
	SinkSupabase = "supabase"
	SinkPostgres = "postgres"
	SinkSQLite   = "sqlite"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Resume  ResumeConfig
	Contact ContactConfig
}

// ResumeConfig locates the static resume asset. URL takes precedence over
// Path for the presence probe; the download route always serves Path.
type ResumeConfig struct {
	Path string `env:"RESUME_PATH" envDefault:"public/resume.pdf"`
	URL  string `env:"RESUME_URL"`
	// Refresh is how often the presence probe re-runs in the background.
	Refresh time.Duration `env:"RESUME_REFRESH" envDefault:"5m"`
}

type ContactConfig struct {
	Sink     string        `env:"CONTACT_SINK" envDefault:"supabase"`
	Table    string        `env:"CONTACT_TABLE" envDefault:"contact_submissions"`
	Timeout  time.Duration `env:"CONTACT_TIMEOUT" envDefault:"15s"`
	Migrate  bool          `env:"CONTACT_MIGRATE" envDefault:"false"`
	Cooldown time.Duration `env:"CONTACT_COOLDOWN" envDefault:"0s"`

	SupabaseURL string `env:"SUPABASE_URL"`
	SupabaseKey string `env:"SUPABASE_ANON_KEY"`
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"portfolio.db"`
	RedisURL    string `env:"REDIS_URL"`
}

// Load parses the environment. Missing backend credentials are not an error
// here: the contact flow reports them per submission instead.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.Contact.Sink = strings.ToLower(strings.TrimSpace(cfg.Contact.Sink))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Contact.Sink {
	case SinkSupabase, SinkPostgres, SinkSQLite:
	default:
		return fmt.Errorf("CONTACT_SINK %q is not one of supabase, postgres, sqlite", c.Contact.Sink)
	}

	if c.Resume.Refresh <= 0 {
		return fmt.Errorf("RESUME_REFRESH must be positive, got %s", c.Resume.Refresh)
	}
	if c.Contact.Timeout <= 0 {
		return fmt.Errorf("CONTACT_TIMEOUT must be positive, got %s", c.Contact.Timeout)
	}
	if c.Contact.Cooldown < 0 {
		return fmt.Errorf("CONTACT_COOLDOWN must not be negative, got %s", c.Contact.Cooldown)
	}
	if c.Contact.Table == "" {
		return fmt.Errorf("CONTACT_TABLE is required")
	}

	return nil
}

// Dev reports whether the server runs in development mode.
func (c *Config) Dev() bool {
	return c.Env == "" || c.Env == "development" || c.Env == "dev"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// CooldownEnabled reports whether per-client submission cooldown is active.
func (c *Config) CooldownEnabled() bool {
	return c.Contact.Cooldown > 0 && c.Contact.RedisURL != ""
}
