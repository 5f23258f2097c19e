// Package logging holds the process-wide zap logger. Normal runs only show
// warnings and errors so the CLI's own summary stays the primary output;
// -v and -vv raise the level for tracing which files are touched.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field names shared by all packages.
const (
	FieldPath      = "path"
	FieldKind      = "kind"
	FieldStatus    = "status"
	FieldMode      = "mode"
	FieldTemplate  = "template"
	FieldCount     = "count"
	FieldVersion   = "version"
	FieldConfig    = "config"
	FieldDryRun    = "dry_run"
	FieldOperation = "operation"
)

// Verbosity levels for the -v flag count.
const (
	VerbosityUser  = 0 // warnings and errors only
	VerbosityInfo  = 1 // -v: one line per file
	VerbosityDebug = 2 // -vv: config and template details
)

// Logger is the global logger. It is a no-op until Initialize is called so
// packages can log from tests without setup.
var Logger = zap.NewNop().Sugar()

// VerbosityToLevel maps the -v count to a zap level.
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= VerbosityUser:
		return zapcore.WarnLevel
	case verbosity == VerbosityInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Initialize replaces the global logger. JSON output uses zap's production
// encoder; otherwise a compact console encoder without timestamps is used.
// Both write to stderr.
func Initialize(verbosity int, jsonOutput bool) error {
	level := zap.NewAtomicLevelAt(VerbosityToLevel(verbosity))

	if jsonOutput {
		cfg := zap.NewProductionConfig()
		cfg.Level = level
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		l, err := cfg.Build()
		if err != nil {
			return err
		}
		Logger = l.Sugar()
		return nil
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if os.Getenv("NO_COLOR") != "" {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level)
	Logger = zap.New(core).Sugar()
	return nil
}

// Sync flushes buffered entries. Errors from syncing stderr are ignored.
func Sync() {
	_ = Logger.Sync()
}
