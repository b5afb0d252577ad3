// Package logger provides the application's structured logger, a thin
// configuration layer over log/slog.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects the output level and format.
type Config struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// Logger wraps slog.Logger so call sites depend on one local type.
type Logger struct {
	*slog.Logger
}

// New creates a logger writing to out. If out is nil, os.Stdout is used.
func New(cfg Config, out io.Writer) *Logger {
	if out == nil {
		out = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return &Logger{Logger: slog.New(handler)}
}

// With returns a logger carrying additional attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
