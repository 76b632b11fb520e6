package scrubber

import (
	"fmt"

	"github.com/ooni/wcanalysis/internal/model"
)

// Logger wraps a [model.Logger] and scrubs every message before
// emitting it, optionally prepending Prefix.
//
// Messages are scrubbed even when the wrapped logger would drop them.
type Logger struct {
	// Logger is the MANDATORY logger to wrap.
	Logger model.Logger

	// Prefix is an OPTIONAL string prepended to each message
	// after scrubbing, e.g., "request #17: ".
	Prefix string
}

var _ model.Logger = &Logger{}

func (sl *Logger) scrub(message string) string {
	return sl.Prefix + Scrub(message)
}

// Debug implements model.Logger.
func (sl *Logger) Debug(message string) {
	sl.Logger.Debug(sl.scrub(message))
}

// Debugf implements model.Logger.
func (sl *Logger) Debugf(format string, v ...any) {
	sl.Debug(fmt.Sprintf(format, v...))
}

// Info implements model.Logger.
func (sl *Logger) Info(message string) {
	sl.Logger.Info(sl.scrub(message))
}

// Infof implements model.Logger.
func (sl *Logger) Infof(format string, v ...any) {
	sl.Info(fmt.Sprintf(format, v...))
}

// Warn implements model.Logger.
func (sl *Logger) Warn(message string) {
	sl.Logger.Warn(sl.scrub(message))
}

// Warnf implements model.Logger.
func (sl *Logger) Warnf(format string, v ...any) {
	sl.Warn(fmt.Sprintf(format, v...))
}
