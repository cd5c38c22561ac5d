package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("creates logger with json format", func(t *testing.T) {
		cfg := &Config{
			Level:      "info",
			Format:     "json",
			Output:     "stdout",
			TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		}

		logger, err := New(cfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("creates logger with console format", func(t *testing.T) {
		cfg := DefaultConfig()
		logger, err := New(cfg)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})
}

func TestNewForEnvironment(t *testing.T) {
	t.Run("production uses json config", func(t *testing.T) {
		logger, err := NewForEnvironment("production")
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("development uses console config", func(t *testing.T) {
		logger, err := NewForEnvironment("development")
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"fatal", zapcore.FatalLevel},
		{"WARN", zapcore.WarnLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}
