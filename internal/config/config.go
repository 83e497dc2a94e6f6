package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration
type Config struct {
	ServerPort string `env:"PORT" envDefault:"8080"`

	// Database: sqlite (default), postgres or mysql
	DatabaseType   string `env:"DB_TYPE" envDefault:"sqlite"`
	DatabasePath   string `env:"DB_PATH" envDefault:"./moodimello.db"`
	DatabaseURL    string `env:"DATABASE_URL"`
	MigrationsPath string `env:"MIGRATIONS_PATH"`

	// Child session tokens
	SessionSecret   string        `env:"SESSION_SECRET"`
	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"4h"`

	// bcrypt hash of the parent PIN; empty means exiting needs no PIN
	ParentPINHash string `env:"PARENT_PIN_HASH"`

	// Session summary emails; disabled when SESFromEmail is empty
	AWSRegion    string `env:"AWS_REGION" envDefault:"us-east-1"`
	SESFromEmail string `env:"SES_FROM_EMAIL"`
	SESFromName  string `env:"SES_FROM_NAME" envDefault:"MoodiMello"`
	AppBaseURL   string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`
	EmailDebug   bool   `env:"EMAIL_DEBUG"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.SessionDuration <= 0 {
		return nil, fmt.Errorf("SESSION_DURATION must be positive, got %s", cfg.SessionDuration)
	}
	return cfg, nil
}

// EmailEnabled reports whether session summaries should be sent
func (c *Config) EmailEnabled() bool {
	return c.SESFromEmail != ""
}
