package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/omnigrid/omnigrid/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	// Logging
	LogLevel observability.LogLevel

	// Metrics exposition
	MetricsEnabled bool
	MetricsAddr    string

	// Seed data
	FixturesPath  string
	WatchFixtures bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		LogLevel:       parseLogLevel(getEnv("OMNIGRID_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("OMNIGRID_METRICS_ENABLED", false),
		MetricsAddr:    getEnv("OMNIGRID_METRICS_ADDR", "127.0.0.1:9090"),
		FixturesPath:   getEnv("OMNIGRID_FIXTURES", ""),
		WatchFixtures:  getEnvBool("OMNIGRID_WATCH_FIXTURES", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.MetricsEnabled && c.MetricsAddr == "" {
		return fmt.Errorf("metrics address is required when metrics are enabled")
	}
	if c.WatchFixtures && c.FixturesPath == "" {
		return fmt.Errorf("fixtures path is required when fixture watching is enabled")
	}
	return nil
}

// parseLogLevel converts a string log level to observability.LogLevel
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(strings.ToLower(value))
	if err != nil {
		return defaultValue
	}
	return parsed
}
