package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadFromEnv loads configuration from environment variables
// Parameters:
// - configDir: Directory containing config files (or empty for default)
// - configFilePath: Path to .env file (or empty for default)
func LoadFromEnv(configDir string, configFilePath string) (*Config, error) {
	// Load empty configuration
	cfg := New()

	// If configDir is empty, use the default
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".lintwire")

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	// Default log path is in the config directory
	defaultLogPath := filepath.Join(configDir, "lintwire.log")

	// Use provided config file path or default
	if configFilePath == "" {
		configFilePath = filepath.Join(configDir, ".env")
	}

	// Check if ENV_FILE_PATH is set to load from a custom .env file
	envFilePath := getEnvString("ENV_FILE_PATH", "")
	if envFilePath != "" {
		// User specified a custom env file path
		err := godotenv.Load(envFilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else {
		// Try to load from config directory first
		err := godotenv.Load(configFilePath)
		if err != nil {
			// Then try current directory as fallback
			_ = godotenv.Load() // Ignore errors if file doesn't exist
		}
	}

	// Analyzer Configuration
	rawArgs := strings.Fields(getEnvString("LINTWIRE_ANALYZER_ARGS", "--json --verbose"))
	cfg.Analyzer = AnalyzerConfig{
		Binary: getEnvString("LINTWIRE_ANALYZER_BINARY", "slint"),
		Args:   rawArgs,
	}

	// Scheduler Configuration
	cfg.Scheduler = SchedulerConfig{
		DebounceWindow: getEnvDuration("LINTWIRE_DEBOUNCE_WINDOW", 200*time.Millisecond),
	}

	// Logging Configuration
	cfg.Logging = LoggingConfig{
		Level:      getEnvString("LINTWIRE_LOG_LEVEL", "info"),
		Format:     getEnvString("LINTWIRE_LOG_FORMAT", "text"),
		Output:     getEnvString("LINTWIRE_LOG_OUTPUT", defaultLogPath),
		AddSource:  getEnvBool("LINTWIRE_LOG_ADD_SOURCE", true),
		TimeFormat: getEnvString("LINTWIRE_LOG_TIME_FORMAT", time.RFC3339),
	}

	// Validate the configuration
	return cfg, cfg.Validate()
}
