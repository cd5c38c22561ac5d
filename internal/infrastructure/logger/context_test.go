package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext_FromContext(t *testing.T) {
	core, _ := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ctx := WithContext(context.Background(), logger)
	got := FromContext(ctx)
	assert.Same(t, logger, got)
}

func TestFromContext_MissingLoggerReturnsNop(t *testing.T) {
	got := FromContext(context.Background())
	assert.NotNil(t, got)
	// A no-op logger must not panic when used
	got.Info("ignored")
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")
	assert.Equal(t, "req-123", GetRequestID(ctx))

	enriched.Info("hello")
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
}

func TestWithUserID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithUserID(context.Background(), logger, "user-42")
	assert.Equal(t, "user-42", GetUserID(ctx))

	enriched.Info("hello")
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "user-42", entries[0].ContextMap()["user_id"])
}

func TestGetRequestID_Missing(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
}
