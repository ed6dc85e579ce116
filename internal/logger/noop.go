package logger

// NoOpLogger is a logger that does nothing. Used in tests and as a safe
// default before configuration is loaded.
type NoOpLogger struct{}

// NewNoOp creates a new no-op logger instance.
func NewNoOp() Interface {
	return &NoOpLogger{}
}

func (l *NoOpLogger) Debug(msg string, fields ...any) {}
func (l *NoOpLogger) Info(msg string, fields ...any)  {}
func (l *NoOpLogger) Warn(msg string, fields ...any)  {}
func (l *NoOpLogger) Error(msg string, fields ...any) {}
func (l *NoOpLogger) Fatal(msg string, fields ...any) {}

// With returns the logger unchanged.
func (l *NoOpLogger) With(fields ...any) Interface { return l }

// WithComponent returns the logger unchanged.
func (l *NoOpLogger) WithComponent(component string) Interface { return l }

// WithError returns the logger unchanged.
func (l *NoOpLogger) WithError(err error) Interface { return l }
