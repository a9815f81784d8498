// Package logger provides structured logging setup for gchat-notify.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Strob0t/gchat-notify/internal/config"
)

const (
	asyncBuffer  = 1024
	asyncWorkers = 1
)

// New creates a *slog.Logger from the given Logging config.
// Output is JSON to w (stderr when nil) with a "service" attribute on every
// record. The returned Closer flushes pending records in async mode.
func New(cfg config.Logging, w io.Writer) (*slog.Logger, Closer) {
	if w == nil {
		w = os.Stderr
	}

	var handler slog.Handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	var closer Closer = nopCloser{}

	if cfg.Async {
		ah := NewAsyncHandler(handler, asyncBuffer, asyncWorkers)
		handler, closer = ah, ah
	}

	return slog.New(handler).With("service", cfg.Service), closer
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
