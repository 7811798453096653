package commands

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/lintwire/internal/app"
)

// BuildInfo carries version information populated at build time
type BuildInfo struct {
	Version    string
	BuildTime  string
	CommitHash string
}

// Global flags, also honoured by the default (check) action so that
// "lintwire --json file" behaves like "lintwire check --json file"
var globalFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    "json",
		Aliases: []string{"j"},
		Usage:   "Print the raw result as JSON instead of a report",
	},
}

// NewApp builds the lintwire CLI application
func NewApp(build BuildInfo) *cli.App {
	version := build.Version
	if build.CommitHash != "" && build.CommitHash != "unknown" {
		version = fmt.Sprintf("%s (%s)", build.Version, build.CommitHash)
	}

	return &cli.App{
		Name:  "lintwire",
		Usage: "Coalescing client for the external source analyzer",
		Description: "Lintwire feeds source text to the external analyzer and turns its\n" +
			"streamed JSON output into structured diagnostics and variable usage\n" +
			"reports. Rapid repeated requests are debounced into a single run.\n\n" +
			"When run without a subcommand, lintwire analyzes the given file once\n" +
			"(the check command).",
		Version: version,
		Compiled: func() time.Time {
			t, err := time.Parse(time.RFC3339, build.BuildTime)
			if err != nil {
				return time.Now()
			}
			return t
		}(),
		Flags: globalFlags,
		Before: func(c *cli.Context) error {
			// Initialize the application
			application, err := app.New()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			// Store the app instance in the context for later use
			c.App.Metadata = map[string]interface{}{
				"app": application,
			}

			return nil
		},
		After: func(c *cli.Context) error {
			// Gracefully shutdown the application
			if app, ok := c.App.Metadata["app"].(*app.App); ok {
				return app.Shutdown()
			}
			return nil
		},
		Commands: []*cli.Command{
			CheckCommand(),
			WatchCommand(),
		},
		Action: func(c *cli.Context) error {
			// Default action is to run the check command
			return CheckCommand().Action(c)
		},
	}
}
