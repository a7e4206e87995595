// Package logging wraps slog with the small conveniences the service needs:
// string level parsing, a JSON handler on stdout, and component-tagged
// child loggers.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the application logger. It embeds slog.Logger so call sites use
// the standard Info/Warn/Error API.
type Logger struct {
	*slog.Logger
}

// New builds a JSON logger at the given level. Unknown or empty levels fall
// back to info.
func New(level string) *Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	})
	return &Logger{Logger: slog.New(handler)}
}

// Default returns an info-level logger. Handlers fall back to it when they
// are constructed without one.
func Default() *Logger {
	return New("info")
}

// WithComponent returns a child logger tagged with the given component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{Logger: l.Logger.With("component", name)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
