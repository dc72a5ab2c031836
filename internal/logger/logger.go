// Package logger routes the console's diagnostics through slog to
// stderr, where they stay off the alt screen and remain visible after
// the program exits.
package logger

import (
	"log/slog"
	"os"
)

// Logger is the process-wide logger. Tests may swap it to capture
// output.
var Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Error records a failure that was not recovered from.
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// Warn records a recoverable problem, such as a snapshot refresh that
// fell back to stale data.
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Info records routine progress.
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Debug records developer-level detail, suppressed at the default
// level.
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}
