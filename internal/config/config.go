// Package config provides environment-driven configuration for lintwire
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Analyzer  AnalyzerConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
}

// AnalyzerConfig holds configuration for the external analyzer subprocess
type AnalyzerConfig struct {
	Binary string   // Path or name of the analyzer binary
	Args   []string // Flags requesting structured, verbose JSON output
}

// SchedulerConfig holds configuration for the debounced scheduler
type SchedulerConfig struct {
	DebounceWindow time.Duration // Delay after the latest request before a run starts
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string // debug, info, warn, error
	Format     string // text or json
	Output     string // stdout, stderr, or file path
	AddSource  bool   // Include source code position in logs
	TimeFormat string // Time format for logs (empty uses RFC3339)
}

// New returns a new empty Config
func New() *Config {
	return &Config{
		Analyzer:  AnalyzerConfig{},
		Scheduler: SchedulerConfig{},
		Logging:   LoggingConfig{},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.validateAnalyzer(); err != nil {
		return fmt.Errorf("analyzer config: %w", err)
	}

	if err := c.validateScheduler(); err != nil {
		return fmt.Errorf("scheduler config: %w", err)
	}

	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ParseLogLevel parses a log level string to a slog.Level
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none":
		// Set to a very high level that won't be triggered
		return slog.Level(9999)
	default:
		return slog.LevelInfo
	}
}

func (c *Config) validateAnalyzer() error {
	if c.Analyzer.Binary == "" {
		return fmt.Errorf("binary cannot be empty")
	}
	return nil
}

func (c *Config) validateScheduler() error {
	if c.Scheduler.DebounceWindow <= 0 {
		return fmt.Errorf("debounce window must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	format := strings.ToLower(c.Logging.Format)
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

// getEnvString returns a string from the environment variable
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvBool returns a bool from the environment variable
func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration returns a time.Duration from the environment variable
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
