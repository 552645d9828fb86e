package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level   string
		format  string
		debugOn bool
	}{
		{level: "debug", format: "json", debugOn: true},
		{level: "info", format: "console", debugOn: false},
		{level: "not-a-level", format: "json", debugOn: false},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.format, func(t *testing.T) {
			l, err := New(tt.level, tt.format)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if got := l.Core().Enabled(zapcore.DebugLevel); got != tt.debugOn {
				t.Errorf("debug enabled = %v, want %v", got, tt.debugOn)
			}
		})
	}
}

func TestGetInitializesGlobal(t *testing.T) {
	if Get() == nil {
		t.Fatal("Get() returned nil")
	}
}
