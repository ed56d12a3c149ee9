package tween

import "log/slog"

// logger receives diagnostics about degenerate compositions.
var logger *slog.Logger = slog.Default()

// SetLogger overrides the package logger.
//
// If not set, slog.Default() is used.
func SetLogger(l *slog.Logger) {
	logger = l
}
