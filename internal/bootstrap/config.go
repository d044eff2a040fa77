package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/division-gg/division-api/config"
	"github.com/joho/godotenv"
)

// InitLogger initializes the structured logger.
func InitLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()

	if err := cfg.Auth.Validate(); err != nil {
		return cfg, fmt.Errorf("validate auth config: %w", err)
	}

	return cfg, nil
}
