// Package logging provides the structured logging abstraction used by every
// swift-csv component. Components depend on the Logger interface only, so the
// extraction pipeline can be exercised in tests with MockLogger.
//
// There is no Fatal level: failures travel back to the cobra command as
// errors and main decides the exit code.
package logging

// Logger is the structured logger handed to every component constructor.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError, WithField and WithFields return a derived logger; the
	// receiver is left unchanged.
	WithError(err error) Logger
	WithField(key string, value interface{}) Logger
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry. Keys should come from
// the Field* constants.
type Field struct {
	Key   string
	Value interface{}
}
