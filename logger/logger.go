// Package logger provides the structured logging surface used across the
// probe engine, history store, and CLI.
package logger

import "context"

// Logger is the structured logging interface. Fields may be nil.
type Logger interface {
	// Debug logs request/response level diagnostics.
	Debug(ctx context.Context, msg string, fields map[string]interface{})

	// Info logs normal progress events.
	Info(ctx context.Context, msg string, fields map[string]interface{})

	// Warn logs recoverable problems, e.g. best-effort recording failures.
	Warn(ctx context.Context, msg string, fields map[string]interface{})

	// Error logs failures.
	Error(ctx context.Context, msg string, fields map[string]interface{})

	// WithField returns a derived logger that attaches the field to every
	// subsequent entry.
	WithField(key string, value interface{}) Logger
}
