package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	l := New("warn", "json", "stderr")
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestZapAdapter_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).
		With(map[string]interface{}{"component": "chat"}).
		WithError(errors.New("boom"))

	log.Info("handled", map[string]interface{}{"rule": "greeting"})

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		ctx := entries[0].ContextMap()
		assert.Equal(t, "handled", entries[0].Message)
		assert.Equal(t, "chat", ctx["component"])
		assert.Equal(t, "greeting", ctx["rule"])
		assert.Equal(t, "boom", ctx["error"])
	}
}

func TestNoOpAndTestLoggers(t *testing.T) {
	NewNoOpLogger().Error("ignored", nil)
	NewTestLogger(t).Debug("visible in verbose test output", map[string]interface{}{"k": 1})
}
