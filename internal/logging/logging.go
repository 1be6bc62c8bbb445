// ABOUTME: Structured logger construction for the newskitten CLI.
// ABOUTME: Logs go to stderr because stdout carries the structured result object.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a text slog.Logger at the provided level, writing to stderr.
func New(level string) *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFromString(level),
	})
	return slog.New(handler)
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
