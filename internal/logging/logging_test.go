package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warn ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
		assert.Equal(t, got, mustParse(t, LevelString(got)))
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func mustParse(t *testing.T, s string) slog.Level {
	t.Helper()
	level, err := ParseLevel(s)
	require.NoError(t, err)
	return level
}

func TestResolveLevelPrefersEnvironment(t *testing.T) {
	t.Setenv(EnvLevel, "error")
	level, err := ResolveLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, level)

	t.Setenv(EnvLevel, "")
	level, err = ResolveLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestJSONOutputCarriesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Component: "app"}, &buf)
	logger.Info("hello", "count", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "app", entry["component"])
	assert.EqualValues(t, 3, entry["count"])
}

func TestTypedTextRedactedAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo}, &buf)
	logger.Info("typing requested", "preview", "hunter2")
	assert.NotContains(t, buf.String(), "hunter2")
	assert.Contains(t, buf.String(), "[REDACTED]")

	buf.Reset()
	require.NoError(t, logger.SetLevel("debug"))
	logger.Info("typing requested", "preview", "hunter2")
	assert.Contains(t, buf.String(), "hunter2")
}

func TestSetLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo}, &buf)
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	require.NoError(t, logger.SetLevel("debug"))
	assert.Equal(t, slog.LevelDebug, logger.Level())
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "shown")

	assert.Error(t, logger.SetLevel("loud"))
	assert.Equal(t, slog.LevelDebug, logger.Level())
}
