package logger

import (
	"log/slog"
	"os"
	"strings"
)

// L is the package level logger used across the application.
var L = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Set replaces the default logger with the provided one.
func Set(l *slog.Logger) {
	if l != nil {
		L = l
	}
}

// New builds a logger writing to stdout at the given level
// (debug, info, warn, error). format "json" selects the JSON handler.
func New(level, format string) *slog.Logger {
	var lv slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lv}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
