package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"verbose", slog.LevelInfo, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.name)
		assert.Equal(t, tt.want, got, tt.name)
		assert.Equal(t, tt.ok, ok, tt.name)
	}
}

func TestSetupFiltersByLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := Setup("warn", &buf)
	logger.Info("hidden")
	logger.Warn("store write failed", "key", "animals:1")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "store write failed")
	assert.Contains(t, out, "key=animals:1")
	assert.Same(t, logger, slog.Default())
}

func TestSetupWarnsOnInvalidLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	Setup("loud", &buf)
	assert.Contains(t, buf.String(), "invalid log level")
}

func TestOpenFileCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "wordmatch.log")
	f, err := OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(data))
}
