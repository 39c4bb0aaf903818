// Package zaplog implements the domain Logger interface on top of zap.
// This is in external-adapters to isolate the external dependency.
package zaplog

import (
	"go.uber.org/zap"

	"github.com/openmotics/gwci/internal/domain/interfaces"
)

// Logger adapts a zap.Logger to the domain Logger contract.
type Logger struct {
	z *zap.Logger
}

// New creates a logger. Verbose mode uses zap's development configuration
// (human-readable, debug level); otherwise production settings apply.
func New(verbose bool) (*Logger, error) {
	var (
		z   *zap.Logger
		err error
	)
	if verbose {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return &Logger{z: z}, nil
}

// NewWithZap wraps an existing zap logger (useful for tests).
func NewWithZap(z *zap.Logger) *Logger {
	return &Logger{z: z}
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.z.Debug(msg, toZap(fields)...)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.z.Info(msg, toZap(fields)...)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.z.Warn(msg, toZap(fields)...)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.z.Error(msg, toZap(fields)...)
}

// Sync flushes buffered log entries
func (l *Logger) Sync() error {
	return l.z.Sync()
}

func toZap(fields []interfaces.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}
