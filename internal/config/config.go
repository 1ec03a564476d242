package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Load reads configuration from environment variables and .env file.
// Missing required variables are fatal.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("Invalid configuration: %s", err)
	}
	return cfg
}

// Parse builds a Config from the current process environment.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RegistrationFee < 0 {
		return Config{}, fmt.Errorf("REGISTRATION_FEE must not be negative, got %d", cfg.RegistrationFee)
	}
	if cfg.ProjectID != "" && cfg.PushToken == "" {
		return Config{}, fmt.Errorf("PUBSUB_PUSH_TOKEN is required when GCP_PROJECT is set")
	}
	return cfg, nil
}
