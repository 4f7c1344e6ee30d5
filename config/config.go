package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StorePostgres = "postgres"
)

type Config struct {
	Env      string `env:"ENV"       envDefault:"local" validate:"required,oneof=local staging production"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"  validate:"oneof=debug info warn error"`

	APIBaseURL string `env:"API_BASE_URL" envDefault:"http://localhost:8080" validate:"required,url"`

	CredentialStore string `env:"CREDENTIAL_STORE" envDefault:"file"  validate:"required,oneof=memory file postgres"`
	CredentialFile  string `env:"CREDENTIAL_FILE"  envDefault:".events-client/credentials.json"`
	CredentialKey   string `env:"CREDENTIAL_KEY"   envDefault:"token" validate:"required"`
	DatabaseURL     string `env:"DATABASE_URL"                        validate:"required_if=CredentialStore postgres"`

	MetricsPort          string `env:"METRICS_PORT"           envDefault:"9090"`
	SessionCheckSchedule string `env:"SESSION_CHECK_SCHEDULE" envDefault:"@every 5m" validate:"required"`

	// Reference API server.
	Port            string `env:"PORT"               envDefault:"8080"`
	JWTSecret       string `env:"JWT_SECRET"                           validate:"omitempty,min=32"`
	ResendAPIKey    string `env:"RESEND_API_KEY"                       validate:"required_if=Env production,required_if=Env staging"`
	ResendFrom      string `env:"RESEND_FROM"                          validate:"required_if=Env production,required_if=Env staging"`
	LoginRatePerMin int    `env:"LOGIN_RATE_PER_MIN" envDefault:"30"   validate:"min=1,max=10000"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
