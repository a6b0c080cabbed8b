package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	logger     *slog.Logger
	loggerOnce sync.Once
	level      = new(slog.LevelVar)
	output     io.Writer = os.Stderr
)

// Logger returns the process logger. The initial level comes from
// FAQ_LOG_LEVEL and can be changed later with SetLevel.
func Logger() *slog.Logger {
	loggerOnce.Do(func() {
		if lvl := os.Getenv("FAQ_LOG_LEVEL"); lvl != "" {
			level.Set(ParseLevel(lvl))
		}
		logger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
	})
	return logger
}

// SetLevel changes the level of the process logger.
func SetLevel(name string) {
	level.Set(ParseLevel(name))
}

// ParseLevel maps a level name to slog; unknown names mean info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// Discard returns a logger that drops everything, for tests and the
// wasm build.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
