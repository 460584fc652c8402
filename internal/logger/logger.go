package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// globalLogger falls back to the slog default until InitWithConfig is called,
// so packages that log during tests never hit a nil logger.
var globalLogger = slog.Default()

// rotating is the open log file, nil when logging to stdout only
var rotating *lumberjack.Logger

// LogLevel represents different log levels
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase name of the level
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Config holds logger configuration
type Config struct {
	Level      LogLevel
	OutputPath string
	Format     string // "json" or "text"
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// InitWithConfig initializes logger with custom config
func InitWithConfig(config Config) error {
	if err := Close(); err != nil {
		return err
	}

	output, err := openOutput(config)
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{
		Level:     toSlogLevel(config.Level),
		AddSource: true,
	}

	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)

	return nil
}

func openOutput(config Config) (io.Writer, error) {
	if config.OutputPath == "" || config.OutputPath == "stdout" {
		return os.Stdout, nil
	}

	if err := os.MkdirAll(filepath.Dir(config.OutputPath), 0755); err != nil {
		return nil, err
	}

	maxSize := config.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 50
	}

	// Rotated file plus stdout so container logs still see everything.
	rotating = &lumberjack.Logger{
		Filename:   config.OutputPath,
		MaxSize:    maxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAgeDays,
		Compress:   true,
	}
	return io.MultiWriter(os.Stdout, rotating), nil
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Close flushes and closes the rotating log file, if any
func Close() error {
	if rotating == nil {
		return nil
	}
	err := rotating.Close()
	rotating = nil
	return err
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	globalLogger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	globalLogger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	globalLogger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	globalLogger.Error(msg, args...)
}

// Fatal logs a fatal message and exits
func Fatal(msg string, args ...any) {
	globalLogger.Error(msg, args...)
	os.Exit(1)
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	return globalLogger
}
