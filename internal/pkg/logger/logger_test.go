package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	prev := global
	Set(zap.New(core))
	t.Cleanup(func() { global = prev })

	return logs
}

func TestWithFields(t *testing.T) {
	logs := observe(t)

	ctx := WithFields(context.Background(), "session_id", "abc")
	ctx = WithFields(ctx, "backend", "generative")
	Warnf(ctx, "reply failed: %s", "timeout")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "reply failed: timeout", entries[0].Message)
	assert.Equal(t, map[string]interface{}{"session_id": "abc", "backend": "generative"}, entries[0].ContextMap())
}

func TestWithFields_DoesNotLeakIntoParent(t *testing.T) {
	logs := observe(t)

	parent := WithFields(context.Background(), "a", 1)
	_ = WithFields(parent, "b", 2)
	Infof(parent, "hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, map[string]interface{}{"a": int64(1)}, logs.All()[0].ContextMap())
}

func TestInit_UnknownLevelFallsBackToInfo(t *testing.T) {
	prev := global
	t.Cleanup(func() { global = prev })

	require.NoError(t, Init("loud", false))
	assert.False(t, global.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, global.Desugar().Core().Enabled(zapcore.InfoLevel))
}
