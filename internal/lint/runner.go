package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/tildaslashalef/lintwire/internal/config"
	"github.com/tildaslashalef/lintwire/internal/loggy"
	"github.com/tildaslashalef/lintwire/internal/ulid"
)

// Runner executes one analyzer subprocess per Run call. The subprocess is
// owned by that call for its whole lifetime: spawn, write source, close
// stdin, drain stdout, exit.
type Runner struct {
	config config.AnalyzerConfig
	logger *loggy.Logger
}

// NewRunner creates a runner with the provided analyzer configuration
func NewRunner(cfg config.AnalyzerConfig, logger *loggy.Logger) *Runner {
	return &Runner{
		config: cfg,
		logger: logger,
	}
}

// Run launches the analyzer, feeds it the source text on stdin and
// decodes its stdout into a ParseResult.
//
// A failure to launch or to deliver the source is fatal for the run. A
// non-zero exit status is not: the analyzer routinely exits non-zero on
// inputs with findings, so the run resolves with whatever result was
// accumulated, however partial.
func (r *Runner) Run(ctx context.Context, source string) (*ParseResult, error) {
	logger := r.logger.With("run_id", ulid.RunID())
	if reqID := loggy.GetRequestID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}

	cmd := exec.CommandContext(ctx, r.config.Binary, r.config.Args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("opening analyzer stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("opening analyzer stdout: %w", err)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting analyzer: %w", err)
	}

	logger.Debug("Analyzer started",
		"binary", r.config.Binary,
		"args", strings.Join(r.config.Args, " "),
	)

	// Deliver the source concurrently with draining stdout so a chatty
	// analyzer cannot deadlock both pipes. Closing stdin signals end of
	// input; a failed write means the analyzer can never produce a
	// complete result, so it is brought down immediately.
	writeErr := make(chan error, 1)
	go func() {
		_, werr := io.WriteString(stdin, source)
		if cerr := stdin.Close(); werr == nil {
			werr = cerr
		}
		if werr != nil {
			_ = cmd.Process.Kill()
		}
		writeErr <- werr
	}()

	result := NewParseResult()
	decoder := NewDecoder(logger)

	buf := make([]byte, 4096)
	for {
		n, rerr := stdout.Read(buf)
		if n > 0 {
			decoder.Feed(buf[:n], result)
		}
		if rerr != nil {
			if rerr != io.EOF {
				logger.Warn("Reading analyzer output", "error", rerr)
			}
			break
		}
	}
	decoder.Flush(result)

	if werr := <-writeErr; werr != nil {
		_ = cmd.Wait()
		return nil, fmt.Errorf("writing source to analyzer: %w", werr)
	}

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Warn("Analyzer exited with failure status",
				"exit_code", exitErr.ExitCode(),
				"stderr", strings.TrimSpace(stderr.String()),
			)
			return result, nil
		}
		return nil, fmt.Errorf("waiting for analyzer: %w", err)
	}

	logger.Debug("Analyzer run complete",
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
		"variables", len(result.Variables),
	)

	return result, nil
}
