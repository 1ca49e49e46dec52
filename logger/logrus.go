package logger

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LogrusLogger wraps a logrus logger to implement the Logger interface.
type LogrusLogger struct {
	logger *logrus.Logger
	entry  *logrus.Entry
}

// NewLogrusLogger creates a new LogrusLogger writing to stderr. The text
// formatter keeps diagnostic output readable next to the probe results on
// stdout.
func NewLogrusLogger(level string) *LogrusLogger {
	return NewLogrusLoggerWithOutput(level, os.Stderr)
}

// NewLogrusLoggerWithOutput creates a new LogrusLogger writing to the given
// output.
func NewLogrusLoggerWithOutput(level string, out io.Writer) *LogrusLogger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	logger.SetOutput(out)

	logLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	return &LogrusLogger{
		logger: logger,
		entry:  logrus.NewEntry(logger),
	}
}

// Debug logs a debug-level message.
func (l *LogrusLogger) Debug(ctx context.Context, msg string, fields map[string]interface{}) {
	l.withFields(fields).Debug(msg)
}

// Info logs an info-level message.
func (l *LogrusLogger) Info(ctx context.Context, msg string, fields map[string]interface{}) {
	l.withFields(fields).Info(msg)
}

// Warn logs a warning-level message.
func (l *LogrusLogger) Warn(ctx context.Context, msg string, fields map[string]interface{}) {
	l.withFields(fields).Warn(msg)
}

// Error logs an error-level message.
func (l *LogrusLogger) Error(ctx context.Context, msg string, fields map[string]interface{}) {
	l.withFields(fields).Error(msg)
}

// WithField returns a new logger with the given field added.
func (l *LogrusLogger) WithField(key string, value interface{}) Logger {
	return &LogrusLogger{
		logger: l.logger,
		entry:  l.entry.WithField(key, value),
	}
}

func (l *LogrusLogger) withFields(fields map[string]interface{}) *logrus.Entry {
	if fields == nil {
		return l.entry
	}
	return l.entry.WithFields(fields)
}
