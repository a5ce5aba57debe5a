package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"not found", fmt.Errorf("key not found"), ErrNotFound},
		{"no such file", fmt.Errorf("open x: no such file or directory"), ErrNotFound},
		{"permission denied", fmt.Errorf("permission denied"), ErrUnavailable},
		{"rate limited", fmt.Errorf("telegram: rate limit exceeded"), ErrTransient},
		{"timeout", fmt.Errorf("request timeout"), ErrTransient},
		{"connection refused", fmt.Errorf("dial tcp: connection refused"), ErrTransient},
		{"conflict", fmt.Errorf("document already exists"), ErrConflict},
		{"anything else", fmt.Errorf("boom"), ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.True(t, IsCategory(got, tt.want), "got %v", got)
		})
	}
}

func TestMapError_ContextErrorsPassThrough(t *testing.T) {
	assert.Equal(t, context.Canceled, MapError(context.Canceled))
	assert.True(t, IsCategory(MapError(context.DeadlineExceeded), ErrTransient))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(Transient("flaky network")))
	assert.True(t, IsRetryable(fmt.Errorf("save: %w", ErrConflict)))
	assert.False(t, IsRetryable(NotFound("missing")))
	assert.False(t, IsRetryable(context.Canceled))
	assert.False(t, IsRetryable(nil))
}

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))

	err := Wrap(ErrInvalidInput, "decode payload")
	assert.True(t, IsCategory(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "decode payload")
}
