// Package config reads process configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"
)

// Config holds all extraction settings.
type Config struct {
	Extract ExtractConfig
	Logging LoggingConfig
}

// ExtractConfig controls how statement documents are interpreted.
type ExtractConfig struct {
	// DayFirst reads ambiguous dates as DD/MM (the Vietnamese default).
	DayFirst bool
	// Deduplicate drops exact duplicate rows across the merged batch.
	Deduplicate bool
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  slog.Level
	Format string // "text" or "json"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Extract: ExtractConfig{
			DayFirst:    getEnvAsBool("STMT_DAY_FIRST", true),
			Deduplicate: getEnvAsBool("STMT_DEDUPLICATE", true),
		},
		Logging: LoggingConfig{
			Format: getEnv("STMT_LOG_FORMAT", "text"),
		},
	}

	level, err := parseLevel(getEnv("STMT_LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.Logging.Level = level

	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return nil, fmt.Errorf("STMT_LOG_FORMAT must be text or json, got %q", cfg.Logging.Format)
	}

	return cfg, nil
}

// NewLogger builds the process logger from the logging settings.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Logging.Level}
	if c.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("STMT_LOG_LEVEL must be debug, info, warn or error, got %q", s)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
