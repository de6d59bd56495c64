// Package config reads service configuration from the environment (including
// a local .env file) with command-line flag overrides.
package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	RunAddress   string `env:"RUN_ADDRESS"`   // HTTP listen address
	DatabasePath string `env:"DATABASE_PATH"` // SQLite database file path
	JWTSecret    string `env:"JWT_SECRET"`    // JWT signing secret
}

// Parse loads configuration from .env, environment variables and flags.
// Environment variables win over flags. JWT_SECRET is required.
func Parse() (*Config, error) {
	return parse(os.Args[1:])
}

func parse(args []string) (*Config, error) {
	// A missing .env file is fine; env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envDatabasePath := cfg.DatabasePath
	envJWTSecret := cfg.JWTSecret

	fs := flag.NewFlagSet("cargomate", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddress, "a", "localhost:8080", "address and port for HTTP server")
	fs.StringVar(&cfg.DatabasePath, "d", "cargomate.db", "SQLite database file path")
	fs.StringVar(&cfg.JWTSecret, "s", "", "JWT signing secret")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envDatabasePath != "" {
		cfg.DatabasePath = envDatabasePath
	}
	if envJWTSecret != "" {
		cfg.JWTSecret = envJWTSecret
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is not set; pass -s or set JWT_SECRET")
	}
	return cfg, nil
}

// String returns a string representation of the config (secret is masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Addr: %s, DB: %s, JWT: *** (masked) ***}", c.RunAddress, c.DatabasePath)
}
