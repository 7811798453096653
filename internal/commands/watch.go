package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/lintwire/internal/app"
	"github.com/tildaslashalef/lintwire/internal/loggy"
	"github.com/tildaslashalef/lintwire/internal/tui"
)

// WatchCommand returns the watch command
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Aliases:   []string{"w"},
		Usage:     "Re-analyze a source file whenever it changes",
		ArgsUsage: "<file>",
		Description: "Watches the given file and re-runs the analyzer on every change,\n" +
			"showing live diagnostics in an interactive view. Rapid edits are\n" +
			"coalesced into a single analyzer run.",
		Action: watchAction,
	}
}

func watchAction(c *cli.Context) error {
	// Get application instance
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("watch requires a file argument")
	}

	loggy.Info("Starting watch mode", "file", path)

	tuiService := tui.NewService(application)
	return tuiService.Run(c.Context, path)
}
