// Package logger provides process-wide logging for the KarmicDD CLI.
//
// Messages go through a zap core writing to stderr. Debug output is only
// emitted when verbose mode is enabled via the --verbose flag; warnings and
// errors are always written so suppressed failures stay observable.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	format            = "console"
	level             = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	base              = build()
)

func build() *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""

	var enc zapcore.Encoder
	if format == "json" {
		prod := zap.NewProductionEncoderConfig()
		prod.TimeKey = "ts"
		prod.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(prod)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(output)), level)
	return zap.New(core)
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.WarnLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetLevel sets the minimum level from its name (debug, info, warn, error).
// Unknown names are ignored.
func SetLevel(name string) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	verbose = l == zapcore.DebugLevel
	level.SetLevel(l)
}

// SetFormat selects console or json encoding.
func SetFormat(f string) {
	mu.Lock()
	defer mu.Unlock()
	format = f
	base = build()
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. A nil writer discards everything.
func SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build()
}

// L returns the underlying structured logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Named returns a structured logger tagged with a component name.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Debug logs a formatted message when verbose mode is enabled.
func Debug(format string, args ...any) {
	L().Debug(fmt.Sprintf(format, args...))
}

// Section logs a section header when verbose mode is enabled.
func Section(name string) {
	L().Debug("=== " + name + " ===")
}

// Info logs a formatted informational message when verbose mode is enabled.
func Info(format string, args ...any) {
	mu.RLock()
	v := verbose
	mu.RUnlock()
	if v {
		L().Info(fmt.Sprintf(format, args...))
	}
}

// Warn logs a formatted warning.
func Warn(format string, args ...any) {
	L().Warn(fmt.Sprintf(format, args...))
}

// Error logs a formatted error.
func Error(format string, args ...any) {
	L().Error(fmt.Sprintf(format, args...))
}

// Sync flushes buffered output.
func Sync() {
	_ = L().Sync()
}
