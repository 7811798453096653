package loggy

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-abc")

	assert.Equal(t, "req-abc", GetRequestID(ctx))
}

func TestGetRequestIDAbsent(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
	assert.Empty(t, GetRequestID(nil))
}

func TestWithRequestIDNilContext(t *testing.T) {
	ctx := WithRequestID(nil, "req-abc")

	assert.Equal(t, "req-abc", GetRequestID(ctx))
}

func TestNewRequestID(t *testing.T) {
	id := NewRequestID()

	assert.True(t, strings.HasPrefix(id, "req-"))
	assert.NotEqual(t, id, NewRequestID())
}
