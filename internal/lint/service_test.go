package lint

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tildaslashalef/lintwire/internal/config"
	"github.com/tildaslashalef/lintwire/internal/loggy"
)

func TestServiceAnalyzeEndToEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell-based analyzer stub requires a POSIX shell")
	}

	cfg := &config.Config{
		Analyzer: config.AnalyzerConfig{
			Binary: "sh",
			Args: []string{"-c", `cat > /dev/null
echo '{"type":"error","error":"bad op","line":[3,3],"column":[5,8]}'
echo '{"type":"variable","variable":"_x","comment":"// note","definitions":[{"line":[1,1],"column":[1,2]}],"usage":[]}'`},
		},
		Scheduler: config.SchedulerConfig{
			DebounceWindow: 10 * time.Millisecond,
		},
	}

	svc := NewService(cfg, loggy.NewNoopLogger())

	result, err := svc.Analyze(context.Background(), "f() ->\n    _x = 1.\n")

	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "bad op", result.Errors[0].Message)
	require.Len(t, result.Variables, 1)
	assert.Equal(t, "_x", result.Variables[0].Name)
	assert.Equal(t, "note", result.Variables[0].Comment)
	assert.True(t, result.Variables[0].IsLocal())
}
