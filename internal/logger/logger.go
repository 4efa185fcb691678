// Package logger provides structured logging using log/slog.
package logger

import (
	"io"
	"log/slog"

	"github.com/zapponejosh/lunisolar/internal/config"
)

// Setup builds the logger described by cfg, writing to w, and makes it the
// slog default. Commands pass stderr so their output on stdout stays clean.
// Outside development every record carries the environment name.
func Setup(cfg *config.Config, w io.Writer) *slog.Logger {
	logger := New(w, cfg.LogLevel, cfg.LogFormat)
	if cfg.Env != config.EnvDevelopment {
		logger = logger.With(slog.String("env", cfg.Env))
	}
	slog.SetDefault(logger)
	return logger
}

// New builds a logger writing to w.
func New(w io.Writer, level, format string) *slog.Logger {
	var handler slog.Handler

	lvl := parseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl == slog.LevelDebug, // Add source file info in debug mode
	}

	// Choose handler based on format
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
