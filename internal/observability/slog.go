// Package observability provides logging initialization.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/stolasapp/courseware/internal/config"
)

// InitSlog initializes a logger with the given config, writing to stderr.
// When the format is unset and running in a terminal, it uses a
// human-readable text format; otherwise it uses JSON for structured logging.
func InitSlog(cfg *config.Config) *slog.Logger {
	return NewLogger(cfg, os.Stderr, term.IsTerminal(int(os.Stdin.Fd())))
}

// NewLogger builds the logger described by cfg writing to w. tty selects the
// text format when cfg does not specify one.
func NewLogger(cfg *config.Config, w io.Writer, tty bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource: cfg.DevMode,
		Level:     toLogLevel(cfg.LogLevel),
	}
	var handler slog.Handler
	switch strings.ToLower(cfg.LogFormat) {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		if tty {
			handler = slog.NewTextHandler(w, opts)
		} else {
			handler = slog.NewJSONHandler(w, opts)
		}
	}
	return slog.New(handler)
}

func toLogLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
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
