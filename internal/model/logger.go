package model

// DebugLogger is a logger emitting only debug messages.
type DebugLogger interface {
	// Debug emits a debug message.
	Debug(msg string)

	// Debugf formats and emits a debug message.
	Debugf(format string, v ...any)
}

// InfoLogger is a logger emitting debug and info messages.
type InfoLogger interface {
	DebugLogger

	// Info emits an informational message.
	Info(msg string)

	// Infof formats and emits an informational message.
	Infof(format string, v ...any)
}

// Logger is the logger used by the analyzers and the classifier. It is
// out of the box compatible with `log.Log` in `apex/log`.
type Logger interface {
	InfoLogger

	// Warn emits a warning message.
	Warn(msg string)

	// Warnf formats and emits a warning message.
	Warnf(format string, v ...any)
}

// DiscardLogger is the logger used when the caller does not provide one.
var DiscardLogger Logger = logDiscarder{}

type logDiscarder struct{}

func (logDiscarder) Debug(msg string) {}

func (logDiscarder) Debugf(format string, v ...any) {}

func (logDiscarder) Info(msg string) {}

func (logDiscarder) Infof(format string, v ...any) {}

func (logDiscarder) Warn(msg string) {}

func (logDiscarder) Warnf(format string, v ...any) {}

// ValidLoggerOrDefault returns the given logger, if not nil,
// and [DiscardLogger] otherwise.
func ValidLoggerOrDefault(logger Logger) Logger {
	if logger != nil {
		return logger
	}
	return DiscardLogger
}
