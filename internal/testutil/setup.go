// Package testutil provides common testing utilities shared by the terrain packages.
package testutil

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/VoidMesh/terrain/internal/logging"
)

// TestConfig holds configuration for test setup
type TestConfig struct {
	// EnableLogCapture routes log output to t.Log instead of discarding it
	EnableLogCapture bool
	// Output additionally receives captured log output so tests can assert
	// on it. Ignored unless EnableLogCapture is set.
	Output io.Writer
}

// DefaultTestConfig returns a default test configuration suitable for most tests
func DefaultTestConfig() *TestConfig {
	return &TestConfig{
		EnableLogCapture: false, // Disable by default for cleaner test output
	}
}

// SetupTest swaps the global logger for the duration of a test.
//
// Usage:
//
//	func TestMyFunction(t *testing.T) {
//	    cleanup := testutil.SetupTest(t, testutil.DefaultTestConfig())
//	    defer cleanup()
//	    // ... test code
//	}
func SetupTest(t *testing.T, config *TestConfig) func() {
	t.Helper()

	originalLogger := logging.Logger

	if config.EnableLogCapture {
		var w io.Writer = testWriter{t: t}
		if config.Output != nil {
			w = io.MultiWriter(w, config.Output)
		}
		testLogger := log.New(w)
		testLogger.SetLevel(log.DebugLevel)
		logging.Logger = testLogger
	} else {
		logging.Logger = log.New(io.Discard)
	}

	return func() {
		logging.Logger = originalLogger
	}
}

// testWriter adapts testing.T to implement io.Writer for log output
type testWriter struct {
	t *testing.T
}

func (tw testWriter) Write(p []byte) (n int, err error) {
	tw.t.Helper()
	tw.t.Log(string(p))
	return len(p), nil
}

// SkipIfShort skips the test if testing.Short() is true.
func SkipIfShort(t *testing.T, reason string) {
	t.Helper()

	if testing.Short() {
		if reason == "" {
			reason = "skipping test in short mode"
		}
		t.Skip(reason)
	}
}
