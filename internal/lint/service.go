package lint

import (
	"context"

	"github.com/tildaslashalef/lintwire/internal/config"
	"github.com/tildaslashalef/lintwire/internal/loggy"
)

// Service is the public entry point for analysis. It owns the debounced
// scheduler and the subprocess runner behind it.
type Service struct {
	scheduler *Scheduler
	logger    *loggy.Logger
}

// NewService creates the analysis service from configuration
func NewService(cfg *config.Config, logger *loggy.Logger) *Service {
	runner := NewRunner(cfg.Analyzer, logger)
	scheduler := NewScheduler(cfg.Scheduler.DebounceWindow, runner.Run, logger)

	return &Service{
		scheduler: scheduler,
		logger:    logger,
	}
}

// Analyze submits source text and blocks until the debounced run
// settles. Requests superseded by newer submissions fail with
// ErrSuperseded.
func (s *Service) Analyze(ctx context.Context, source string) (*ParseResult, error) {
	return s.scheduler.Analyze(ctx, source)
}
