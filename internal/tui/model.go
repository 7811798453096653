package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/tildaslashalef/lintwire/internal/app"
	"github.com/tildaslashalef/lintwire/internal/lint"
	"github.com/tildaslashalef/lintwire/internal/loggy"
)

// How often the watched file is polled for changes
const pollInterval = 250 * time.Millisecond

// Status represents the current state of the watch view
type Status int

const (
	// StatusWaiting means no analysis has completed yet
	StatusWaiting Status = iota
	// StatusAnalyzing means a run is in flight
	StatusAnalyzing
	// StatusReady means the latest result is on screen
	StatusReady
	// StatusError means the latest run failed
	StatusError
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	statusStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	localStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	helpStyle    = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

// Model is the bubbletea model for the watch view
type Model struct {
	app  *app.App
	path string

	status  Status
	spinner spinner.Model
	result  *lint.ParseResult
	err     error

	lastMod time.Time
	runs    int
	width   int
}

// NewModel creates the watch model for a file
func NewModel(application *app.App, path string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		app:     application,
		path:    path,
		status:  StatusWaiting,
		spinner: sp,
		width:   80,
	}
}

// Messages

type tickMsg time.Time

// sourceChangedMsg carries fresh file content after a modification
type sourceChangedMsg struct {
	source  string
	modTime time.Time
}

// analysisDoneMsg carries the settled result of one analyzer run
type analysisDoneMsg struct {
	result *lint.ParseResult
	err    error
}

// Init kicks off the poll loop and an initial analysis
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, readFile(m.path), tick())
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case tickMsg:
		return m, tea.Batch(m.checkFile(), tick())

	case sourceChangedMsg:
		m.lastMod = msg.modTime
		m.status = StatusAnalyzing
		return m, m.analyze(msg.source)

	case analysisDoneMsg:
		// A superseded request means a newer edit is already being
		// analyzed; keep showing the current state.
		if errors.Is(msg.err, lint.ErrSuperseded) {
			return m, nil
		}
		m.runs++
		if msg.err != nil {
			m.status = StatusError
			m.err = msg.err
			return m, nil
		}
		m.status = StatusReady
		m.err = nil
		m.result = msg.result
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// tick schedules the next file poll
func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// readFile loads the watched file unconditionally
func readFile(path string) tea.Cmd {
	return func() tea.Msg {
		info, err := os.Stat(path)
		if err != nil {
			return analysisDoneMsg{err: fmt.Errorf("watching %s: %w", path, err)}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return analysisDoneMsg{err: fmt.Errorf("reading %s: %w", path, err)}
		}
		return sourceChangedMsg{source: string(data), modTime: info.ModTime()}
	}
}

// checkFile re-reads the watched file if it changed since the last poll
func (m Model) checkFile() tea.Cmd {
	path := m.path
	lastMod := m.lastMod
	return func() tea.Msg {
		info, err := os.Stat(path)
		if err != nil {
			// Editors often replace the file on save; a transient
			// stat failure resolves on the next poll
			loggy.Debug("Watched file temporarily unavailable", "file", path, "error", err)
			return nil
		}
		if !info.ModTime().After(lastMod) {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			loggy.Warn("Failed to re-read watched file", "file", path, "error", err)
			return nil
		}
		return sourceChangedMsg{source: string(data), modTime: info.ModTime()}
	}
}

// analyze submits the source through the debounced scheduler. Rapid
// successive edits supersede each other here, so a burst of changes
// produces a single analyzer run.
func (m Model) analyze(source string) tea.Cmd {
	svc := m.app.Lint
	return func() tea.Msg {
		ctx := loggy.WithRequestID(context.Background(), loggy.NewRequestID())
		result, err := svc.Analyze(ctx, source)
		return analysisDoneMsg{result: result, err: err}
	}
}

// View renders the watch screen
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("lintwire watch - " + m.path))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	switch m.status {
	case StatusError:
		b.WriteString(errorStyle.Render(wordwrap.String(m.err.Error(), m.width)))
		b.WriteString("\n")
	case StatusReady:
		b.WriteString(m.resultView())
	}

	b.WriteString(helpStyle.Render("q: quit"))
	b.WriteString("\n")
	return b.String()
}

// statusLine shows the spinner while a run is in flight
func (m Model) statusLine() string {
	switch m.status {
	case StatusAnalyzing:
		return m.spinner.View() + statusStyle.Render("analyzing...")
	case StatusWaiting:
		return statusStyle.Render("waiting for first result...")
	default:
		return statusStyle.Render(fmt.Sprintf("run %d", m.runs))
	}
}

// resultView renders the latest diagnostics and variables
func (m Model) resultView() string {
	r := m.result
	if r == nil {
		return ""
	}

	var out string

	if len(r.Errors) == 0 && len(r.Warnings) == 0 {
		out += successStyle.Render("✓ no issues found") + "\n"
	}
	for _, d := range r.Errors {
		out += errorStyle.Render("✗ "+locationPrefix(d.Range)) +
			wordwrap.String(d.Message, m.width-4) + "\n"
	}
	for _, d := range r.Warnings {
		out += warningStyle.Render("⚠ "+locationPrefix(d.Range)) +
			wordwrap.String(d.Message, m.width-4) + "\n"
	}

	if len(r.Variables) > 0 {
		out += "\n" + statusStyle.Render("variables") + "\n"
		for _, v := range r.Variables {
			name := v.Name
			if v.IsLocal() {
				name = localStyle.Render(name)
			}
			out += fmt.Sprintf("  %s  defs:%d uses:%d", name, len(v.Definitions), len(v.Usage))
			if v.Comment != "" {
				out += "  " + statusStyle.Render(v.Comment)
			}
			out += "\n"
		}
	}

	return out + "\n"
}

// locationPrefix formats a diagnostic location as one-based line:column
func locationPrefix(r *lint.Range) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("%d:%d ", r.Start.Line+1, r.Start.Character+1)
}
