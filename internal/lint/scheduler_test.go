package lint

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/lintwire/internal/loggy"
)

// recordingRun is a runFunc stub that records the sources it was given
type recordingRun struct {
	mu      sync.Mutex
	sources []string
	result  *ParseResult
	err     error
	delay   time.Duration
}

func (r *recordingRun) run(ctx context.Context, source string) (*ParseResult, error) {
	r.mu.Lock()
	r.sources = append(r.sources, source)
	r.mu.Unlock()

	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	return r.result, r.err
}

func (r *recordingRun) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sources...)
}

func TestSchedulerAnalyze(t *testing.T) {
	want := NewParseResult()
	want.AddWarning(Diagnostic{Message: "w"})

	runner := &recordingRun{result: want}
	s := NewScheduler(10*time.Millisecond, runner.run, loggy.NewNoopLogger())

	result, err := s.Analyze(context.Background(), "source text")

	require.NoError(t, err)
	assert.Same(t, want, result)
	assert.Equal(t, []string{"source text"}, runner.seen())
}

func TestSchedulerSupersedesPendingRequest(t *testing.T) {
	runner := &recordingRun{result: NewParseResult()}
	s := NewScheduler(50*time.Millisecond, runner.run, loggy.NewNoopLogger())

	// First request, submitted from a goroutine so we can overlap it
	firstErr := make(chan error, 1)
	go func() {
		_, err := s.Analyze(context.Background(), "first")
		firstErr <- err
	}()

	// Give the first request time to occupy the pending slot, then
	// supersede it well inside its debounce window
	time.Sleep(10 * time.Millisecond)
	result, err := s.Analyze(context.Background(), "second")

	require.NoError(t, err)
	assert.NotNil(t, result)

	select {
	case err := <-firstErr:
		assert.ErrorIs(t, err, ErrSuperseded)
	case <-time.After(time.Second):
		t.Fatal("first request never settled")
	}

	// Only the latest source ever reached the runner
	assert.Equal(t, []string{"second"}, runner.seen())
}

func TestSchedulerRapidBurstRunsOnce(t *testing.T) {
	runner := &recordingRun{result: NewParseResult()}
	s := NewScheduler(30*time.Millisecond, runner.run, loggy.NewNoopLogger())

	var wg sync.WaitGroup
	superseded := 0
	var mu sync.Mutex

	for _, source := range []string{"v1", "v2", "v3"} {
		wg.Add(1)
		go func(src string) {
			defer wg.Done()
			_, err := s.Analyze(context.Background(), src)
			if err != nil {
				mu.Lock()
				superseded++
				mu.Unlock()
				assert.ErrorIs(t, err, ErrSuperseded)
			}
		}(source)
		time.Sleep(5 * time.Millisecond)
	}
	wg.Wait()

	// Exactly one run happened, for the last submission
	assert.Equal(t, []string{"v3"}, runner.seen())
	assert.Equal(t, 2, superseded)
}

func TestSchedulerPropagatesRequestID(t *testing.T) {
	seen := make(chan string, 1)
	run := func(ctx context.Context, source string) (*ParseResult, error) {
		seen <- loggy.GetRequestID(ctx)
		return NewParseResult(), nil
	}
	s := NewScheduler(5*time.Millisecond, run, loggy.NewNoopLogger())

	ctx := loggy.WithRequestID(context.Background(), "req-test")
	_, err := s.Analyze(ctx, "x")

	require.NoError(t, err)
	// The run's context carries the submitting request's ID even
	// though the run itself is detached from that context
	assert.Equal(t, "req-test", <-seen)
}

func TestSchedulerRunError(t *testing.T) {
	runner := &recordingRun{err: assert.AnError}
	s := NewScheduler(5*time.Millisecond, runner.run, loggy.NewNoopLogger())

	result, err := s.Analyze(context.Background(), "x")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSchedulerContextCancellationAbandonsWait(t *testing.T) {
	runner := &recordingRun{result: NewParseResult(), delay: 50 * time.Millisecond}
	s := NewScheduler(5*time.Millisecond, runner.run, loggy.NewNoopLogger())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := s.Analyze(ctx, "abandoned")
		done <- err
	}()

	// Cancel after the run has started; the wait ends but the run is
	// not interrupted
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Analyze did not return after cancellation")
	}

	// The run still completes on its own
	assert.Eventually(t, func() bool {
		return len(runner.seen()) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSchedulerRequestDuringRunDoesNotCancelIt(t *testing.T) {
	runner := &recordingRun{result: NewParseResult(), delay: 60 * time.Millisecond}
	s := NewScheduler(10*time.Millisecond, runner.run, loggy.NewNoopLogger())

	firstDone := make(chan error, 1)
	go func() {
		_, err := s.Analyze(context.Background(), "in-flight")
		firstDone <- err
	}()

	// Wait until the first run is in flight, then submit again
	time.Sleep(30 * time.Millisecond)
	secondDone := make(chan error, 1)
	go func() {
		_, err := s.Analyze(context.Background(), "queued")
		secondDone <- err
	}()

	// The in-flight run settles normally; it was not superseded
	select {
	case err := <-firstDone:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("in-flight run never settled")
	}

	select {
	case err := <-secondDone:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("queued run never settled")
	}

	// Both runs executed, in submission order
	assert.Equal(t, []string{"in-flight", "queued"}, runner.seen())
}
