package logger

import (
	"testing"

	"mindclass_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		level string
		want  zapcore.Level
	}{
		{"debug mode", "debug", "", zapcore.DebugLevel},
		{"release mode", "release", "", zapcore.InfoLevel},
		{"explicit level wins", "debug", "warn", zapcore.WarnLevel},
		{"bad level falls back", "release", "loud", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.Mode = tt.mode
			cfg.Log.Level = tt.level
			assert.Equal(t, tt.want, level(cfg))
		})
	}
}

func TestInitLoggerConsoleOnly(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = "release"
	InitLogger(cfg)
	assert.NotNil(t, Log)
	assert.True(t, Log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, Log.Core().Enabled(zapcore.DebugLevel))
}
