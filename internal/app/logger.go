package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/stockcheck-backend/internal/config"
)

const serviceName = "stockcheck"

// NewLogger builds the process logger on stderr and installs it as the
// slog default. "json" is for production; any other format gives text
// output with source locations. Every record carries the service name and
// version.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	logger := newLogger(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	jsonFormat := strings.EqualFold(strings.TrimSpace(cfg.Format), "json")

	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: !jsonFormat,
	}

	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String("service", serviceName),
		slog.String("version", Version),
	)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
