// Package commands implements the lintwire CLI subcommands
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/lintwire/internal/app"
	"github.com/tildaslashalef/lintwire/internal/loggy"
	"github.com/tildaslashalef/lintwire/internal/render"
)

// CheckCommand returns the check command, the default action of the CLI
func CheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Analyze a source file and print its diagnostics",
		ArgsUsage: "[file]",
		Description: "Runs the external analyzer over the given file (or standard input\n" +
			"when no file is given) and prints the diagnostics and variable usage\n" +
			"it reports.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Print the raw result as JSON instead of a report",
			},
		},
		Action: checkAction,
	}
}

func checkAction(c *cli.Context) error {
	// Get application instance
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	source, name, err := readSource(c.Args().First())
	if err != nil {
		return err
	}

	reqID := loggy.NewRequestID()
	ctx := loggy.WithRequestID(c.Context, reqID)

	loggy.Info("Analyzing source", "name", name, "bytes", len(source), "request_id", reqID)

	result, err := application.Lint.Analyze(ctx, source)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if c.Bool("json") {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	} else {
		render.Report(os.Stdout, name, result)
	}

	// Mirror the analyzer's verdict in the exit status
	if result.HasErrors() {
		return cli.Exit("", 1)
	}

	return nil
}

// readSource loads the source text from a file argument, or from standard
// input when the argument is empty or "-"
func readSource(path string) (source string, name string, err error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("reading standard input: %w", err)
		}
		return string(data), "<stdin>", nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), path, nil
}
