// Package config loads the watcher's secrets and account settings from
// environment variables, keeping credentials off the command line.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds environment-provided settings: the RIDB API key for discovery
// and the SMTP account used to deliver alerts.
type Config struct {
	RIDBAPIKey   string `env:"RIDB_API_KEY"`
	SMTPHost     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`
}

// Load parses the environment into a Config. Defaults cover the common gmail
// app-password setup. The From address falls back to the SMTP user.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.SMTPFrom == "" {
		cfg.SMTPFrom = cfg.SMTPUser
	}
	return cfg, nil
}
