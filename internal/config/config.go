package config

import (
	"fmt"

	env "github.com/caarlos0/env/v11"
)

type CommonConfig struct {
	Env      string `env:"APP_ENV" envDefault:"dev"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type HTTPConfig struct {
	Addr          string `env:"HTTP_ADDR" envDefault:":8080"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`
}

type PostgresConfig struct {
	// Empty DSN outside production means in-memory storage.
	DSN string `env:"POSTGRES_DSN"`
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET"`
}

type MailConfig struct {
	Domain    string `env:"MAILGUN_DOMAIN"`
	APIKey    string `env:"MAILGUN_API_KEY"`
	FromEmail string `env:"MAILGUN_FROM_EMAIL" envDefault:"noreply@atelier.dev"`
}

type UploadsConfig struct {
	Dir string `env:"UPLOADS_DIR" envDefault:"uploads"`
}

type Config struct {
	Common   CommonConfig
	HTTP     HTTPConfig
	Postgres PostgresConfig
	Auth     AuthConfig
	Mail     MailConfig
	Uploads  UploadsConfig
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret is empty: set JWT_SECRET")
	}
	if cfg.Common.Env == "production" && cfg.Postgres.DSN == "" {
		return Config{}, fmt.Errorf("postgres dsn is empty: set POSTGRES_DSN")
	}
	return cfg, nil
}
