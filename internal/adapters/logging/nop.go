package logging

import "github.com/felixgeelhaar/mote/internal/ports"

// NopLogger discards all log messages. It is the default logger for stores
// constructed without an explicit one.
type NopLogger struct {
	level ports.Level
}

// NewNopLogger creates a logger that does nothing.
func NewNopLogger() *NopLogger {
	return &NopLogger{level: ports.LevelError}
}

// Debug does nothing.
func (l *NopLogger) Debug(string, ...ports.Field) {}

// Info does nothing.
func (l *NopLogger) Info(string, ...ports.Field) {}

// Warn does nothing.
func (l *NopLogger) Warn(string, ...ports.Field) {}

// Error does nothing.
func (l *NopLogger) Error(string, ...ports.Field) {}

// With returns the logger unchanged.
func (l *NopLogger) With(...ports.Field) ports.Logger { return l }

// Level returns the configured level.
func (l *NopLogger) Level() ports.Level { return l.level }

// SetLevel sets the level; messages are still discarded.
func (l *NopLogger) SetLevel(level ports.Level) { l.level = level }

// Ensure NopLogger implements Logger.
var _ ports.Logger = (*NopLogger)(nil)
