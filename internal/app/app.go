// Package app provides the application initialization and lifecycle management
package app

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/lintwire/internal/config"
	"github.com/tildaslashalef/lintwire/internal/lint"
	"github.com/tildaslashalef/lintwire/internal/loggy"
)

// App represents the application instance with its dependencies
type App struct {
	Config *config.Config
	Lint   *lint.Service
}

// New initializes a new application instance with all its dependencies
func New() (*App, error) {
	// Initialize configuration
	cfg, err := initConfig()
	if err != nil {
		return nil, err
	}

	// Initialize logger
	if err := initLogger(cfg); err != nil {
		return nil, err
	}

	loggy.Info("Application initializing",
		"analyzer", cfg.Analyzer.Binary,
		"debounce_window", cfg.Scheduler.DebounceWindow,
		"log_level", cfg.Logging.Level,
	)

	lintService := lint.NewService(cfg, loggy.GetGlobalLogger())

	return &App{
		Config: cfg,
		Lint:   lintService,
	}, nil
}

// initConfig loads the application configuration from the environment
func initConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv("", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the logging system
func initLogger(cfg *config.Config) error {
	err := loggy.Init(loggy.Config{
		Level:      config.ParseLogLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the application
func (app *App) Shutdown() error {
	loggy.Info("Shutting down application")
	return nil
}

// FromContext retrieves the App instance from the CLI context
func FromContext(c *cli.Context) (*App, error) {
	if c.App.Metadata == nil {
		return nil, fmt.Errorf("app metadata not found in context")
	}

	app, ok := c.App.Metadata["app"].(*App)
	if !ok {
		return nil, fmt.Errorf("app instance not found in context")
	}

	return app, nil
}
