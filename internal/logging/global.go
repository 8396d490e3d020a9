package logging

import (
	"sync"

	"github.com/cristianoliveira/pokeview/internal/colors"
)

var (
	globalMu sync.RWMutex
	global   Logger = noopLogger{}
)

// InitGlobal installs a logger built from the loaded config. Calling it
// again after a file logger is installed does nothing.
func InitGlobal() error {
	if CurrentLogFile() != "" {
		return nil
	}
	l, err := Init(FromGlobalConfig())
	if err != nil {
		return err
	}
	SetGlobal(l)
	if path := CurrentLogFile(); path != "" {
		colors.Debug("Logging to file:", path)
	}
	return nil
}

// SetGlobal replaces the process logger and mirrors console messages into
// it. nil restores the disabled logger.
func SetGlobal(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	globalMu.Lock()
	global = l
	globalMu.Unlock()

	if _, off := l.(noopLogger); off {
		colors.SetLogger(nil)
		return
	}
	colors.SetLogger(l)
}

// GetGlobal returns the process logger.
func GetGlobal() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return global
}

func Debug(msg string, args ...any) { GetGlobal().Debug(msg, args...) }
func Info(msg string, args ...any)  { GetGlobal().Info(msg, args...) }
func Warn(msg string, args ...any)  { GetGlobal().Warn(msg, args...) }
func Error(msg string, args ...any) { GetGlobal().Error(msg, args...) }

// With returns a child of the process logger.
func With(args ...any) Logger { return GetGlobal().With(args...) }

// ShutdownGlobal closes the process log file, if any.
func ShutdownGlobal() error { return GetGlobal().Shutdown() }

// CurrentLogFile returns the file the process logger writes to, or "".
func CurrentLogFile() string {
	if l, ok := GetGlobal().(*jsonLogger); ok {
		return l.out.path
	}
	return ""
}
