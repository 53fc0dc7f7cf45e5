package logger

// Logger is the logging surface used by the generation stages and commands.
// Stages report sizes at debug level and fallbacks at warn level.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
