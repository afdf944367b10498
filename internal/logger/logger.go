package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Level represents a log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of a log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) logrus() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// ParseLevel parses a log level string
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// Logger is a leveled logger backed by logrus.
// Output is discarded unless a file or writer is configured, so logging
// never draws over the TUI.
type Logger struct {
	mu     sync.Mutex
	level  Level
	logger *logrus.Logger
	file   *os.File
}

// Default is the default logger instance
var Default *Logger

func init() {
	Default = New()
}

// New creates a new logger based on environment variables
func New() *Logger {
	lr := logrus.New()
	lr.SetOutput(io.Discard)
	lr.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
		DisableQuote:  true,
	})

	l := &Logger{
		level:  LevelInfo,
		logger: lr,
	}

	// Read log level from environment
	if levelStr := os.Getenv("TRAVELHUB_LOG_LEVEL"); levelStr != "" {
		if level, err := ParseLevel(levelStr); err == nil {
			l.level = level
		}
	}
	lr.SetLevel(l.level.logrus())

	// Read log file from environment
	if logFile := os.Getenv("TRAVELHUB_LOG_FILE"); logFile != "" {
		if err := l.openFile(logFile); err != nil {
			fmt.Fprintf(os.Stderr, "travelhub: cannot open log file: %v\n", err)
		}
	}

	return l
}

func (l *Logger) openFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	l.file = f
	l.logger.SetOutput(f)
	return nil
}

// Configure applies a level and log file chosen after startup (from config
// files or flags). An empty level or path leaves the current setting.
func (l *Logger) Configure(level, file string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level != "" {
		parsed, err := ParseLevel(level)
		if err != nil {
			return err
		}
		l.level = parsed
		l.logger.SetLevel(parsed.logrus())
	}

	if file != "" && (l.file == nil || l.file.Name() != file) {
		if l.file != nil {
			_ = l.file.Close()
			l.file = nil
		}
		if err := l.openFile(file); err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
	}
	return nil
}

// Close closes the logger and any open file handles
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.logger.SetOutput(io.Discard)
		return err
	}
	return nil
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.logger.SetLevel(level.logrus())
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
}

// WithField returns a logrus entry carrying a structured field, for call
// sites that want key/value output instead of a formatted message.
func (l *Logger) WithField(key string, value interface{}) *logrus.Entry {
	return l.logger.WithField(key, value)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(LevelDebug, format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.log(LevelInfo, format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(LevelWarn, format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.log(LevelError, format, v...)
}

func (l *Logger) log(level Level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, v...)
	l.logger.Logf(level.logrus(), "[%s] %s", level, msg)
}

// Package-level functions that use the default logger

// Debug logs a debug message using the default logger
func Debug(format string, v ...interface{}) {
	Default.Debug(format, v...)
}

// Info logs an info message using the default logger
func Info(format string, v ...interface{}) {
	Default.Info(format, v...)
}

// Warn logs a warning message using the default logger
func Warn(format string, v ...interface{}) {
	Default.Warn(format, v...)
}

// Error logs an error message using the default logger
func Error(format string, v ...interface{}) {
	Default.Error(format, v...)
}

// WithField returns a structured entry from the default logger
func WithField(key string, value interface{}) *logrus.Entry {
	return Default.WithField(key, value)
}

// Configure reconfigures the default logger
func Configure(level, file string) error {
	return Default.Configure(level, file)
}

// Close closes the default logger
func Close() error {
	return Default.Close()
}
