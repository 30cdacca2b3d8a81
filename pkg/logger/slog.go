package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config controls the application logger.
type Config struct {
	Level  string    // minimum level: debug, info, warn, error
	Format string    // output format: json or text
	Writer io.Writer // defaults to os.Stdout
}

// New builds a slog.Logger from the given config.
func New(cfg Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(writer, opts)
	} else {
		handler = slog.NewJSONHandler(writer, opts)
	}

	return slog.New(handler)
}
