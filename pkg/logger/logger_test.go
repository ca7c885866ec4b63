package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextFieldsAreAttached(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewFromZap(zap.New(core))

	ctx := WithTraceID(context.Background(), "req-1")
	ctx = WithWorkerID(ctx, 3)
	ctx = WithActionType(ctx, "order_notify")
	ctx = WithOrderNo(ctx, "PS-42")

	l.Infof(ctx, "processed %d", 1)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "processed 1", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["trace_id"])
	assert.EqualValues(t, 3, fields["worker_id"])
	assert.Equal(t, "order_notify", fields["action_type"])
	assert.Equal(t, "PS-42", fields["order_no"])
}

func TestEmptyContextHasNoFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Warnf(context.Background(), "plain")

	require.Len(t, logs.All(), 1)
	assert.Empty(t, logs.All()[0].Context)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", parseLevel("debug").String())
	assert.Equal(t, "error", parseLevel("error").String())
	assert.Equal(t, "info", parseLevel("bogus").String())
}
