// Package obslog is the library-side structured logger used by
// discovery, extract, and scan: library code logs through a
// package-level *slog.Logger instead of depending on the CLI's
// logrus.Logger, so internal/* stays usable outside cmd/codegraph.
package obslog

import (
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// SetLevel reconfigures the package logger's minimum level. cmd/codegraph
// calls this once at startup based on --verbose.
func SetLevel(level slog.Level) {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Debug logs a debug-level structured event (unreadable files skipped,
// package.json parse failures, cached extractions reused, scan totals) —
// silent unless --verbose raised the level.
func Debug(msg string, args ...any) { logger.Debug(msg, args...) }

// Warn logs a recoverable anomaly (a failed cache lookup or cache write).
func Warn(msg string, args ...any) { logger.Warn(msg, args...) }
