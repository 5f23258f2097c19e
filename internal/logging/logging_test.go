package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{VerbosityUser, zapcore.WarnLevel},
		{VerbosityInfo, zapcore.InfoLevel},
		{VerbosityDebug, zapcore.DebugLevel},
		{5, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		if got := VerbosityToLevel(tt.verbosity); got != tt.want {
			t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestInitialize(t *testing.T) {
	orig := Logger
	t.Cleanup(func() { Logger = orig })

	for _, jsonOutput := range []bool{false, true} {
		if err := Initialize(VerbosityInfo, jsonOutput); err != nil {
			t.Fatalf("Initialize(json=%v) error: %v", jsonOutput, err)
		}
		if Logger == nil {
			t.Fatal("Logger is nil after Initialize")
		}
		if !Logger.Desugar().Core().Enabled(zapcore.InfoLevel) {
			t.Errorf("info level should be enabled at verbosity %d", VerbosityInfo)
		}
		if Logger.Desugar().Core().Enabled(zapcore.DebugLevel) {
			t.Error("debug level should be disabled at verbosity 1")
		}
	}
}
