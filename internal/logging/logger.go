package logging

import (
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var Logger *log.Logger

// LogLevel represents available log levels
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
)

// InitLogger initializes the global logger with configuration from environment variables
func InitLogger() {
	Logger = log.New(os.Stderr)

	logLevel := ParseLevel(os.Getenv("LOG_LEVEL"))
	setLogLevel(Logger, logLevel)

	Logger.SetReportTimestamp(true)
	Logger.SetReportCaller(true)

	Logger.Debug("Logger initialized successfully", "level", logLevel)
}

// Configure applies an explicit level, format and prefix to the global logger.
// The "json" and "logfmt" formats switch the formatter; anything else keeps the
// human-readable text output.
func Configure(level, format, prefix string) {
	logger := GetLogger()
	setLogLevel(logger, ParseLevel(level))

	switch strings.ToLower(format) {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	default:
		logger.SetFormatter(log.TextFormatter)
	}

	if prefix != "" {
		logger.SetPrefix(prefix)
	}
}

// ParseLevel maps a level name to a LogLevel, defaulting to debug
func ParseLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		// Default to debug level for maximum visibility
		return DebugLevel
	}
}

func setLogLevel(logger *log.Logger, level LogLevel) {
	switch level {
	case DebugLevel:
		logger.SetLevel(log.DebugLevel)
	case InfoLevel:
		logger.SetLevel(log.InfoLevel)
	case WarnLevel:
		logger.SetLevel(log.WarnLevel)
	case ErrorLevel:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.DebugLevel)
	}
}

// GetLogger returns the global logger instance
func GetLogger() *log.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}

// WithFields creates a logger with contextual fields
func WithFields(fields ...interface{}) *log.Logger {
	return GetLogger().With(fields...)
}

// WithParams creates a logger carrying the terrain generation parameters
func WithParams(terrainWidth, elevationGap, baseHeight int, seed int64) *log.Logger {
	return WithFields(
		"terrain_width", terrainWidth,
		"elevation_gap", elevationGap,
		"base_height", baseHeight,
		"seed", seed,
	)
}

// WithDuration creates a logger with duration context (for performance logging)
func WithDuration(operation string, duration interface{}) *log.Logger {
	return WithFields("operation", operation, "duration", duration)
}
