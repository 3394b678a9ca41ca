package config

import (
	"io"
	"log/slog"
)

// NewLogger builds the application logger. Logging is discarded unless
// log.calls is set.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	if !c.Log.Calls || w == nil {
		w = io.Discard
	}
	opts := &slog.HandlerOptions{Level: c.slogLevel()}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c *Config) slogLevel() slog.Level {
	switch c.Log.Level {
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
