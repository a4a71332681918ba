// Package config loads process configuration from the environment once at
// startup. Components receive what they need by injection; nothing else in
// the gateway reads ambient environment state.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// devJWTSecret keeps local development working without setup. Flagged by
// MissingCredentials so production deploys cannot run with it silently.
const devJWTSecret = "dev-insecure-jwt-secret-change-me"

// Config holds application configuration.
type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:8080" validate:"required,url"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173" validate:"required,url"`

	JWTSecret string `env:"JWT_SECRET" envDefault:"dev-insecure-jwt-secret-change-me"`

	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string `env:"GOOGLE_REDIRECT_URI" envDefault:"http://localhost:8080/auth/google/callback" validate:"required,url"`

	GitHubClientID     string `env:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	GitHubRedirectURI  string `env:"GITHUB_REDIRECT_URI" envDefault:"http://localhost:8080/auth/github/callback" validate:"required,url"`

	EnableHSTS      bool `env:"ENABLE_HSTS"`
	ServerDebugMode bool `env:"SERVER_DEBUG_MODE"`

	OTELEnabled  bool   `env:"OTEL_ENABLED"`
	OTELEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

// Load parses and validates configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the process runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MissingCredentials lists the credential variables that are unset (or left
// at their insecure development default). OAuth logins cannot work without
// them; the caller decides whether that is fatal.
func (c *Config) MissingCredentials() []string {
	var missing []string
	if c.JWTSecret == "" || c.JWTSecret == devJWTSecret {
		missing = append(missing, "JWT_SECRET")
	}
	if c.GoogleClientID == "" {
		missing = append(missing, "GOOGLE_CLIENT_ID")
	}
	if c.GoogleClientSecret == "" {
		missing = append(missing, "GOOGLE_CLIENT_SECRET")
	}
	if c.GitHubClientID == "" {
		missing = append(missing, "GITHUB_CLIENT_ID")
	}
	if c.GitHubClientSecret == "" {
		missing = append(missing, "GITHUB_CLIENT_SECRET")
	}
	return missing
}
