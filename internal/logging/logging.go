// Package logging configures the structured logger. The terminal belongs to
// the TUI, so records go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Setup creates a text logger writing to w at the given level and installs it
// as the default logger.
func Setup(level string, w io.Writer) *slog.Logger {
	lvl, ok := ParseLevel(level)
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	if !ok {
		logger.Warn("invalid log level configured, using default level",
			"configured_level", level,
			"default_level", "info")
	}
	slog.SetDefault(logger)
	return logger
}

// OpenFile opens the log file for appending, creating its directory.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
