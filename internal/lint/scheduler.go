package lint

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tildaslashalef/lintwire/internal/loggy"
)

// ErrSuperseded is returned for a pending analysis request that was
// replaced by a newer one before its debounce window elapsed. Callers
// can silently drop it: the newer request covers the same document.
var ErrSuperseded = errors.New("analysis request superseded")

// runFunc executes one analyzer run for a dequeued task
type runFunc func(ctx context.Context, source string) (*ParseResult, error)

// Scheduler coalesces rapid analysis requests. It holds at most one
// pending task; each new request supersedes the previous pending one and
// re-arms the debounce timer, so a burst of requests results in a single
// analyzer run over the latest source text.
//
// Runs are serialized: a request arriving while a run is in flight never
// cancels that run, it only replaces the pending slot, and its own run
// waits for the active one to finish.
type Scheduler struct {
	window time.Duration
	run    runFunc
	logger *loggy.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *pendingTask

	// Serializes analyzer runs so no two subprocess lifetimes overlap
	runMu sync.Mutex
}

// pendingTask is the single outstanding request slot. The done channel
// is buffered so settling never blocks, even when the waiter already
// abandoned the request via context cancellation. The request ID is
// carried over from the submitting context so the eventual run can be
// correlated with the request that triggered it.
type pendingTask struct {
	source    string
	requestID string
	done      chan taskResult
}

type taskResult struct {
	result *ParseResult
	err    error
}

// NewScheduler creates a scheduler that hands dequeued tasks to run
// after the given debounce window
func NewScheduler(window time.Duration, run runFunc, logger *loggy.Logger) *Scheduler {
	return &Scheduler{
		window: window,
		run:    run,
		logger: logger,
	}
}

// Analyze submits source text for analysis and blocks until the run
// settles. A request superseded by a newer Analyze call fails with
// ErrSuperseded. Cancelling ctx abandons the wait but does not cancel a
// run that already started.
func (s *Scheduler) Analyze(ctx context.Context, source string) (*ParseResult, error) {
	task := &pendingTask{
		source:    source,
		requestID: loggy.GetRequestID(ctx),
		done:      make(chan taskResult, 1),
	}

	s.mu.Lock()
	if s.pending != nil {
		s.timer.Stop()
		s.pending.done <- taskResult{err: ErrSuperseded}
		s.logger.Debug("Superseding pending analysis request")
	}
	s.pending = task
	s.timer = time.AfterFunc(s.window, func() { s.fire(task) })
	s.mu.Unlock()

	select {
	case res := <-task.done:
		return res.result, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// fire runs when a task's debounce timer elapses. The task is detached
// from the pending slot before the run starts, so a request arriving
// mid-run becomes a fresh pending task instead of cancelling anything.
func (s *Scheduler) fire(task *pendingTask) {
	s.mu.Lock()
	if s.pending != task {
		// Superseded between the timer firing and arriving here
		s.mu.Unlock()
		return
	}
	s.pending = nil
	s.timer = nil
	s.mu.Unlock()

	s.runMu.Lock()
	defer s.runMu.Unlock()

	// The run is deliberately not tied to the submitting context, only
	// its request ID travels along for log correlation.
	runCtx := context.Background()
	if task.requestID != "" {
		runCtx = loggy.WithRequestID(runCtx, task.requestID)
	}

	result, err := s.run(runCtx, task.source)
	task.done <- taskResult{result: result, err: err}
}
