package config

import (
	"io"
	"log/slog"
)

// Logger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func Logger(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level(cfg.LogLevel)}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func level(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
