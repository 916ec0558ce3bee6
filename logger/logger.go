// Package logger provides structured logging for the transpiler.
//
// The transpiler logs on two channels: normal progress (per-pod summaries) and
// a verbose channel for recoverable per-node fallbacks (type-metadata
// extraction failures, unsupported-node markers). Both go through a single
// zap SugaredLogger configured once at process start.
package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names so log lines stay grep-able across packages.
const (
	FieldPod   = "pod"
	FieldType  = "type"
	FieldSlot  = "slot"
	FieldKind  = "kind"
	FieldFile  = "file"
	FieldCount = "count"
	FieldError = "error"
)

var (
	mu     sync.Mutex
	logger *zap.SugaredLogger
)

// Initialize configures the global logger. verbosity 0 logs warnings and
// errors, 1 adds info, 2 and above adds the debug channel used for per-node
// fallback reporting.
func Initialize(verbosity int) error {
	level := zap.WarnLevel
	switch {
	case verbosity == 1:
		level = zap.InfoLevel
	case verbosity >= 2:
		level = zap.DebugLevel
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = "" // batch tool, timestamps are noise
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(os.Stderr),
		level,
	)

	mu.Lock()
	defer mu.Unlock()
	logger = zap.New(core).Sugar()
	return nil
}

// Get returns the global logger, initializing a default one if Initialize was
// never called (tests, library use).
func Get() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return logger
}

// Sync flushes buffered log entries. Called before process exit.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	if logger != nil {
		_ = logger.Sync()
	}
}
