// Package tui implements the interactive watch view
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tildaslashalef/lintwire/internal/app"
)

// Service is the main service for the TUI
type Service struct {
	app *app.App
}

// NewService creates a new TUI service
func NewService(application *app.App) *Service {
	return &Service{
		app: application,
	}
}

// Run starts the watch view over the given file
func (s *Service) Run(ctx context.Context, path string) error {
	model := NewModel(s.app, path)

	p := tea.NewProgram(
		model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
