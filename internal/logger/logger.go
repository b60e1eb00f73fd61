package logger

import (
	"io"
	"log/slog"
	"strings"
)

// New returns the process logger: JSON lines in production, colored text otherwise.
func New(w io.Writer, environment string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(environment, "production") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(NewPrettyHandler(w, opts))
}

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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
