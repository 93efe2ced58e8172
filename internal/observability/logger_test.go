package observability

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		env      string
		fallback zapcore.Level
		expect   zapcore.Level
	}{
		{"", zap.InfoLevel, zap.InfoLevel},
		{"", zap.WarnLevel, zap.WarnLevel},
		{"DEBUG", zap.WarnLevel, zap.DebugLevel},
		{"INFO", zap.WarnLevel, zap.InfoLevel},
		{"WARN", zap.InfoLevel, zap.WarnLevel},
		{"ERROR", zap.InfoLevel, zap.ErrorLevel},
		{"debug", zap.InfoLevel, zap.DebugLevel},
		{"  warn  ", zap.InfoLevel, zap.WarnLevel},
		{"invalid", zap.WarnLevel, zap.WarnLevel},
	}
	for _, tt := range tests {
		level := parseLogLevel(tt.env, tt.fallback)
		if got := level.Level(); got != tt.expect {
			t.Errorf("parseLogLevel(%q, %v) = %v, want %v", tt.env, tt.fallback, got, tt.expect)
		}
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(zap.InfoLevel)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	if logger == nil {
		t.Fatal("NewLogger() returned nil logger")
	}

	logger.Info("test message")
	_ = logger.Sync() // best-effort; can fail on /dev/stderr in test env
}
