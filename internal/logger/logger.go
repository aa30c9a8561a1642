// Package logger provides leveled diagnostics for the cantus CLI.
// Warnings are always written. Info, debug and section lines are only
// written in verbose mode, enabled with the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level orders message severities.
type Level int

const (
	// LevelDebug is per-record and per-step detail.
	LevelDebug Level = iota
	// LevelInfo is progress of loading and curation.
	LevelInfo
	// LevelWarn is a recoverable problem the user should see.
	LevelWarn
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "UNKNOWN"
	}
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the log destination. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Enabled reports whether messages at level are written.
func Enabled(level Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled(level)
}

func enabled(level Level) bool {
	return verbose || level >= LevelWarn
}

func logf(level Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled(level) {
		return
	}
	fmt.Fprintf(output, "["+level.String()+"] "+format+"\n", args...)
}

// Debug writes a message in verbose mode.
func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

// Info writes a message in verbose mode.
func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

// Warn always writes a message.
func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

// Section writes a section header in verbose mode.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
