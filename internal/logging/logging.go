// Package logging configures the process-wide structured logger.
package logging

import (
	"io"
	"log/slog"
)

// New creates a slog.Logger writing to w. Level strings follow the usual
// debug/info/warn/error set; format is "text" or "json". It does not touch
// the global default, so commands can hold isolated loggers.
func New(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if formatStr == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
