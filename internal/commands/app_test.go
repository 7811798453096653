package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// stubActions replaces the app lifecycle and actions so flag parsing can be
// exercised without initializing the real application or spawning the analyzer
func stubActions(app *cli.App, gotJSON *bool) {
	app.Before = nil
	app.After = nil
	app.Action = func(c *cli.Context) error {
		*gotJSON = c.Bool("json")
		return nil
	}
	for _, cmd := range app.Commands {
		if cmd.Name == "check" {
			cmd.Action = func(c *cli.Context) error {
				*gotJSON = c.Bool("json")
				return nil
			}
		}
	}
}

func TestAppJSONFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantJSON bool
	}{
		{
			name:     "root flag before file argument",
			args:     []string{"lintwire", "--json", "main.src"},
			wantJSON: true,
		},
		{
			name:     "root short alias",
			args:     []string{"lintwire", "-j", "main.src"},
			wantJSON: true,
		},
		{
			name:     "root without flag",
			args:     []string{"lintwire", "main.src"},
			wantJSON: false,
		},
		{
			name:     "check subcommand flag",
			args:     []string{"lintwire", "check", "--json", "main.src"},
			wantJSON: true,
		},
		{
			name:     "check subcommand without flag",
			args:     []string{"lintwire", "check", "main.src"},
			wantJSON: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := NewApp(BuildInfo{Version: "test"})

			var gotJSON bool
			stubActions(app, &gotJSON)

			err := app.Run(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.wantJSON, gotJSON)
		})
	}
}

func TestAppCommands(t *testing.T) {
	app := NewApp(BuildInfo{Version: "test"})

	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}

	assert.Contains(t, names, "check")
	assert.Contains(t, names, "watch")
	assert.Equal(t, "test", app.Version)
}

func TestAppVersionWithCommit(t *testing.T) {
	app := NewApp(BuildInfo{Version: "1.2.0", CommitHash: "abc1234"})
	assert.Equal(t, "1.2.0 (abc1234)", app.Version)

	app = NewApp(BuildInfo{Version: "1.2.0", CommitHash: "unknown"})
	assert.Equal(t, "1.2.0", app.Version)
}
