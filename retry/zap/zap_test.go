//go:build unit

package zap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	logpkg "github.com/LerianStudio/lib-retry/retry/log"
)

func newObservedLogger(level zapcore.Level) (*Logger, *observer.ObservedLogs) {
	core, observed := observer.New(level)

	return &Logger{logger: zap.New(core)}, observed
}

func TestLoggerNilReceiverFallsBackToNop(t *testing.T) {
	var nilLogger *Logger

	assert.NotPanics(t, func() {
		nilLogger.Info("message")
		nilLogger.Log(context.Background(), logpkg.LevelWarn, "message")
	})
}

func TestLoggerNilUnderlyingFallsBackToNop(t *testing.T) {
	logger := &Logger{}

	assert.NotPanics(t, func() {
		logger.Info("message")
	})
}

func TestLogDispatchesToMatchingZapLevel(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.DebugLevel)
	ctx := context.Background()

	logger.Log(ctx, logpkg.LevelDebug, "debug message")
	logger.Log(ctx, logpkg.LevelInfo, "info message")
	logger.Log(ctx, logpkg.LevelWarn, "warn message")
	logger.Log(ctx, logpkg.LevelError, "error message", logpkg.Err(errors.New("boom")))
	logger.Log(ctx, logpkg.Level(99), "unknown level defaults to info")

	entries := observed.All()
	require.Len(t, entries, 5)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[4].Level)

	assert.Equal(t, "warn message", entries[2].Message)
}

func TestLogCarriesStructuredFields(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.DebugLevel)

	logger.Log(context.Background(), logpkg.LevelWarn, "retrying",
		logpkg.Int("attempt", 2),
		logpkg.Int("max_attempts", 5),
		logpkg.Duration("delay", 2*time.Second),
	)

	entries := observed.All()
	require.Len(t, entries, 1)

	cm := entries[0].ContextMap()
	assert.Equal(t, int64(2), cm["attempt"])
	assert.Equal(t, int64(5), cm["max_attempts"])
}

func TestWithAddsFieldsWithoutMutatingParent(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.DebugLevel)
	child := logger.With(logpkg.String("retry_id", "run-1"))

	logger.Log(context.Background(), logpkg.LevelInfo, "parent")
	child.Log(context.Background(), logpkg.LevelInfo, "child")

	entries := observed.All()
	require.Len(t, entries, 2)

	_, parentHasID := entries[0].ContextMap()["retry_id"]
	assert.False(t, parentHasID)
	assert.Equal(t, "run-1", entries[1].ContextMap()["retry_id"])
}

func TestWithGroupNestsSubsequentFields(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.DebugLevel)
	grouped := logger.WithGroup("retry")

	grouped.Log(context.Background(), logpkg.LevelInfo, "grouped", logpkg.Int("attempt", 1))

	entries := observed.All()
	require.Len(t, entries, 1)

	cm := entries[0].ContextMap()
	nested, ok := cm["retry"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(1), nested["attempt"])
}

func TestLogWithoutSpanDoesNotInjectTraceFields(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.DebugLevel)

	logger.Log(context.Background(), logpkg.LevelInfo, "untraced")

	entries := observed.All()
	require.Len(t, entries, 1)

	_, hasTrace := entries[0].ContextMap()["trace_id"]
	assert.False(t, hasTrace)
}

func TestLogWithOTelSpanInjectsTraceFields(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.DebugLevel)

	traceID, err := trace.TraceIDFromHex("0af7651916cd43dd8448eb211c80319c")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("b7ad6b7169203331")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.Log(ctx, logpkg.LevelInfo, "traced message", logpkg.String("key", "val"))

	entries := observed.All()
	require.Len(t, entries, 1)

	cm := entries[0].ContextMap()
	assert.Equal(t, traceID.String(), cm["trace_id"])
	assert.Equal(t, spanID.String(), cm["span_id"])
}

func TestEnabledFollowsCoreLevel(t *testing.T) {
	logger, _ := newObservedLogger(zapcore.WarnLevel)

	assert.True(t, logger.Enabled(logpkg.LevelError))
	assert.True(t, logger.Enabled(logpkg.LevelWarn))
	assert.False(t, logger.Enabled(logpkg.LevelInfo))
	assert.False(t, logger.Enabled(logpkg.LevelDebug))
}

func TestSyncRespectsCancelledContext(t *testing.T) {
	logger, _ := newObservedLogger(zapcore.DebugLevel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, logger.Sync(ctx), context.Canceled)
	assert.NoError(t, logger.Sync(context.Background()))
}

func TestStructuredConvenienceMethods(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.DebugLevel)

	logger.Debug("debug message")
	logger.Info("info message", String("request_id", "req-1"))
	logger.Warn("warn message", Int("i", 42), Bool("b", true), Duration("d", time.Second))
	logger.Error("error message", ErrorField(errors.New("boom")), Any("a", 1))

	entries := observed.All()
	require.Len(t, entries, 4)

	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "req-1", entries[1].ContextMap()["request_id"])
	assert.Equal(t, int64(42), entries[2].ContextMap()["i"])
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

func TestLevelFiltering(t *testing.T) {
	logger, observed := newObservedLogger(zapcore.InfoLevel)

	logger.Log(context.Background(), logpkg.LevelDebug, "suppressed")
	logger.Log(context.Background(), logpkg.LevelInfo, "appears")

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "appears", entries[0].Message)
}
