package testingx

import (
	"fmt"
	"sync"
)

// SavingLogger is a [model.Logger] saving the emitted lines. It's
// safe to use it from multiple goroutines.
//
// [model.Logger]: https://pkg.go.dev/github.com/ooni/wcanalysis/internal/model#Logger
type SavingLogger struct {
	debug []string
	info  []string
	warn  []string
	mu    sync.Mutex
}

// Debug implements model.Logger.
func (sl *SavingLogger) Debug(message string) {
	sl.mu.Lock()
	sl.debug = append(sl.debug, message)
	sl.mu.Unlock()
}

// Debugf implements model.Logger.
func (sl *SavingLogger) Debugf(format string, v ...any) {
	sl.Debug(fmt.Sprintf(format, v...))
}

// Info implements model.Logger.
func (sl *SavingLogger) Info(message string) {
	sl.mu.Lock()
	sl.info = append(sl.info, message)
	sl.mu.Unlock()
}

// Infof implements model.Logger.
func (sl *SavingLogger) Infof(format string, v ...any) {
	sl.Info(fmt.Sprintf(format, v...))
}

// Warn implements model.Logger.
func (sl *SavingLogger) Warn(message string) {
	sl.mu.Lock()
	sl.warn = append(sl.warn, message)
	sl.mu.Unlock()
}

// Warnf implements model.Logger.
func (sl *SavingLogger) Warnf(format string, v ...any) {
	sl.Warn(fmt.Sprintf(format, v...))
}

// DebugLines returns a copy of the debug lines.
func (sl *SavingLogger) DebugLines() []string {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return append([]string{}, sl.debug...)
}

// InfoLines returns a copy of the info lines.
func (sl *SavingLogger) InfoLines() []string {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return append([]string{}, sl.info...)
}

// WarnLines returns a copy of the warn lines.
func (sl *SavingLogger) WarnLines() []string {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return append([]string{}, sl.warn...)
}
