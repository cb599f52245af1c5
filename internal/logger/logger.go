// Package logger provides leveled logging for the sftool application.
//
// The logger writes to stderr so that command output (tables, log streams)
// stays clean on stdout. Levels follow the usual Debug < Info < Warn < Error
// ordering; Debug is suppressed unless verbose mode is enabled.
package logger

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Level represents a logging severity level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	mu       sync.Mutex
	minLevel = LevelInfo
)

// SetVerbose enables or disables debug-level output.
func SetVerbose(verbose bool) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		minLevel = LevelDebug
	} else {
		minLevel = LevelInfo
	}
}

// SetLevel sets the minimum level that will be emitted.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = level
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func logf(level Level, format string, args ...interface{}) {
	mu.Lock()
	enabled := level >= minLevel
	mu.Unlock()

	if !enabled {
		return
	}

	ts := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(os.Stderr, "%s [%s] %s\n", ts, level, fmt.Sprintf(format, args...))
}

// Debug logs a debug-level message. Suppressed unless verbose mode is on.
func Debug(format string, args ...interface{}) {
	logf(LevelDebug, format, args...)
}

// Info logs an info-level message.
func Info(format string, args ...interface{}) {
	logf(LevelInfo, format, args...)
}

// Warn logs a warning-level message.
func Warn(format string, args ...interface{}) {
	logf(LevelWarn, format, args...)
}

// Error logs an error-level message.
func Error(format string, args ...interface{}) {
	logf(LevelError, format, args...)
}
