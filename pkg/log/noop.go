package log

// NoopLogger discards every message. It is the default for an embedded DB
// so the library stays silent unless a caller opts into logging.
type NoopLogger struct{}

// NewNoopLogger creates a logger that drops everything.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

// Debug drops the message.
func (NoopLogger) Debug(msg string, fields ...Field) {}

// Info drops the message.
func (NoopLogger) Info(msg string, fields ...Field) {}

// Warn drops the message.
func (NoopLogger) Warn(msg string, fields ...Field) {}

// Error drops the message.
func (NoopLogger) Error(msg string, fields ...Field) {}
