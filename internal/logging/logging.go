// Package logging resolves optional slog loggers for library components.
//
// Loggers are injected, never global. Components log on build and render
// boundaries only, never inside tree traversal.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// Discard returns a logger that discards all output.
func Discard() *slog.Logger {
	return slog.New(discardHandler{})
}

// Default returns logger if non-nil, otherwise a discard logger.
func Default(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return Discard()
}

// Resolve picks the logger for a component: an explicit logger wins, a level
// alone yields a text logger on stderr at that level, neither yields a
// discard logger.
func Resolve(logger *slog.Logger, level *slog.Level) *slog.Logger {
	if logger == nil && level != nil {
		return New(os.Stderr, *level, false)
	}
	return Default(logger)
}

// New creates a text or JSON logger writing to w at level.
func New(w io.Writer, level slog.Level, jsonFormat bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if jsonFormat {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel parses debug, info, warn or error (case-insensitive).
// Unknown names fall back to info with ok == false.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
