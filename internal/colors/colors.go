// Package colors provides color output utilities.
package colors

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

// Color constants
const (
	Red     = "\033[0;31m"
	Green   = "\033[0;32m"
	Yellow  = "\033[1;33m"
	Blue    = "\033[0;34m"
	Magenta = "\033[0;35m"
	Cyan    = "\033[0;36m"
	Reset   = "\033[0m"
)

const checkmark = "✓"

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

var (
	debugEnabled = false
	logger       Logger
	mu           sync.RWMutex
	stdout       io.Writer = os.Stdout
	stderr       io.Writer = os.Stderr
)

func init() {
	if val := os.Getenv("POKEVIEW_DEBUG"); val == "true" || val == "1" {
		debugEnabled = true
	}
}

// SetDebug enables or disables debug output.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	debugEnabled = enabled
}

// SetLogger sets the structured logger to mirror console output.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// SetOutput redirects console output. Nil writers restore the process streams.
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout = out
	stderr = errOut
}

func current() (Logger, io.Writer, io.Writer, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return logger, stdout, stderr, debugEnabled
}

// write prints a line and falls back to a plain stderr write when the
// destination refuses it.
func write(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		fmt.Fprintf(os.Stderr, "failed to print message: %v\n", err)
	}
}

// Error outputs an error message to stderr.
func Error(msgs ...string) {
	msg := strings.Join(msgs, " ")
	l, _, errOut, _ := current()
	if l != nil {
		l.Error(msg)
	}
	write(errOut, "%sError:%s %s%s\n", Red, Reset, msg, Reset)
}

// Success outputs a success message to stdout.
func Success(msgs ...string) {
	msg := strings.Join(msgs, " ")
	l, out, _, _ := current()
	if l != nil {
		l.Info(msg, "type", "success")
	}
	write(out, "%s%s%s %s%s\n", Green, checkmark, Reset, msg, Reset)
}

// Warning outputs a warning message to stderr.
func Warning(msgs ...string) {
	msg := strings.Join(msgs, " ")
	l, _, errOut, _ := current()
	if l != nil {
		l.Warn(msg)
	}
	write(errOut, "%sWarning:%s %s%s\n", Yellow, Reset, msg, Reset)
}

// Info outputs an informational message to stdout.
func Info(msgs ...string) {
	msg := strings.Join(msgs, " ")
	l, out, _, _ := current()
	if l != nil {
		l.Info(msg)
	}
	write(out, "%s%s%s\n", Blue, msg, Reset)
}

// Debug outputs a debug message to stderr if debug is enabled.
func Debug(msgs ...string) {
	l, _, errOut, enabled := current()
	if !enabled {
		return
	}
	msg := strings.Join(msgs, " ")
	if l != nil {
		l.Debug(msg)
	}
	write(errOut, "%sDebug:%s %s%s\n", Cyan, Reset, msg, Reset)
}
