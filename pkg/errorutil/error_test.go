package errorutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"retriable", Retriable("smtp down"), true},
		{"wrapped retriable", fmt.Errorf("send: %w", RetriableWrap(errors.New("dial"), "smtp")), true},
		{"non retriable", NonRetriable("bad email"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestWrapKeepsTaggedError(t *testing.T) {
	orig := NonRetriableWithDetails("bad payload", "order_no missing")
	wrapped := Wrap(fmt.Errorf("handler: %w", orig))
	assert.Same(t, orig, wrapped)

	plain := errors.New("io")
	w := Wrap(plain)
	assert.False(t, w.Retryable)
	assert.ErrorIs(t, w, plain)
	assert.Nil(t, Wrap(nil))
}
