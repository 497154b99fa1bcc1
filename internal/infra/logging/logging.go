// Package logging configures the process-wide slog logger.
//
// Development uses a colored tint handler; every other environment writes JSON
// so log shippers can parse it.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default logger for the given environment and level name.
func Setup(environment, level string) {
	slog.SetDefault(New(os.Stderr, environment, ParseLevel(level)))
}

// New builds a logger writing to w.
func New(w io.Writer, environment string, level slog.Level) *slog.Logger {
	if environment == "development" {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}))
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
