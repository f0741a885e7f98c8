package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withCapturedLogger(t *testing.T) *bytes.Buffer {
	t.Helper()

	original := Logger
	t.Cleanup(func() { Logger = original })

	var buf bytes.Buffer
	Logger = log.New(&buf)
	return &buf
}

func Test_Logger_ParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected LogLevel
	}{
		{name: "debug_level", input: "debug", expected: DebugLevel},
		{name: "info_level", input: "info", expected: InfoLevel},
		{name: "warn_level", input: "warn", expected: WarnLevel},
		{name: "warning_level_alias", input: "warning", expected: WarnLevel},
		{name: "error_level", input: "error", expected: ErrorLevel},
		{name: "default_empty_level", input: "", expected: DebugLevel},
		{name: "default_invalid_level", input: "invalid", expected: DebugLevel},
		{name: "case_insensitive_debug", input: "DEBUG", expected: DebugLevel},
		{name: "case_mixed_info", input: "InFo", expected: InfoLevel},
		{name: "whitespace_trimmed", input: "  error ", expected: ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func Test_Logger_InitLogger_FromEnvironment(t *testing.T) {
	original := Logger
	t.Cleanup(func() { Logger = original })

	tests := []struct {
		name          string
		logLevel      string
		expectedLevel log.Level
	}{
		{name: "info", logLevel: "info", expectedLevel: log.InfoLevel},
		{name: "warn", logLevel: "warn", expectedLevel: log.WarnLevel},
		{name: "unset_defaults_to_debug", logLevel: "", expectedLevel: log.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.logLevel)
			InitLogger()
			require.NotNil(t, Logger)
			assert.Equal(t, tt.expectedLevel, Logger.GetLevel())
		})
	}
}

func Test_Logger_Configure(t *testing.T) {
	buf := withCapturedLogger(t)

	Configure("info", "json", "")
	assert.Equal(t, log.InfoLevel, Logger.GetLevel())

	Logger.Debug("hidden")
	Logger.Info("visible", "seed", 7)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug output should be filtered at info level")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.EqualValues(t, 7, entry["seed"])
}

func Test_Logger_WithParams(t *testing.T) {
	buf := withCapturedLogger(t)
	Logger.SetLevel(log.DebugLevel)

	WithParams(10, 2, 5, -42).Info("generated")

	out := buf.String()
	assert.Contains(t, out, "terrain_width=10")
	assert.Contains(t, out, "elevation_gap=2")
	assert.Contains(t, out, "base_height=5")
	assert.Contains(t, out, "seed=-42")
}

func Test_Logger_WithDuration(t *testing.T) {
	buf := withCapturedLogger(t)
	Logger.SetLevel(log.DebugLevel)

	WithDuration("generate", "3ms").Debug("timing")

	out := buf.String()
	assert.Contains(t, out, "operation=generate")
	assert.Contains(t, out, "duration=3ms")
}

func Test_Logger_GetLogger_LazyInit(t *testing.T) {
	original := Logger
	t.Cleanup(func() { Logger = original })

	Logger = nil
	logger := GetLogger()
	require.NotNil(t, logger)
	assert.Same(t, logger, GetLogger())
}
