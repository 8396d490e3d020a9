package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
)

// Logger is the structured logging interface used across pokeview.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a child logger that adds args to every entry.
	With(args ...any) Logger
	// Shutdown closes the log file. Children share the file with their parent.
	Shutdown() error
}

// sink is the destination shared by a logger and its children.
type sink struct {
	path      string
	closer    io.Closer
	closeOnce sync.Once
	closeErr  error
}

func (s *sink) close() error {
	if s.closer == nil {
		return nil
	}
	s.closeOnce.Do(func() { s.closeErr = s.closer.Close() })
	return s.closeErr
}

type jsonLogger struct {
	base *clog.Logger
	out  *sink
}

// Init opens a new log file for this process after rotating old ones. A
// disabled config returns a logger that drops everything.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return noopLogger{}, nil
	}
	dir, err := LogDir()
	if err != nil {
		return nil, fmt.Errorf("log directory: %w", err)
	}
	if err := rotate(dir, cfg.MaxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}

	path := filepath.Join(dir, fileName(cfg, time.Now()))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return newJSONLogger(f, cfg, &sink{path: path, closer: f}), nil
}

// fileName is pokeview_<command>_<timestamp>_<pid>.log.
func fileName(cfg Config, now time.Time) string {
	command := strings.Join(strings.Fields(cfg.Command), "-")
	if command == "" {
		command = "pokeview"
	}
	return fmt.Sprintf("%s%s_%s_%d.log", filePrefix, command, now.Format("20060102-150405"), cfg.PID)
}

// NewWriter returns a Logger writing JSON entries to w. Shutdown does not
// close w.
func NewWriter(w io.Writer, cfg Config) Logger {
	return newJSONLogger(w, cfg, &sink{})
}

func newJSONLogger(w io.Writer, cfg Config, out *sink) *jsonLogger {
	base := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           levelFor(cfg.Level),
		Formatter:       clog.JSONFormatter,
	})
	return &jsonLogger{
		base: base.With("pid", cfg.PID, "command", cfg.Command),
		out:  out,
	}
}

// levelFor maps a config level to clog, defaulting to info.
func levelFor(name string) clog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "warning" {
		name = "warn"
	}
	level, err := clog.ParseLevel(name)
	if err != nil || level == clog.FatalLevel {
		return clog.InfoLevel
	}
	return level
}

func (l *jsonLogger) Debug(msg string, args ...any) { l.base.Debug(msg, redact(args)...) }
func (l *jsonLogger) Info(msg string, args ...any)  { l.base.Info(msg, redact(args)...) }
func (l *jsonLogger) Warn(msg string, args ...any)  { l.base.Warn(msg, redact(args)...) }
func (l *jsonLogger) Error(msg string, args ...any) { l.base.Error(msg, redact(args)...) }

func (l *jsonLogger) With(args ...any) Logger {
	return &jsonLogger{base: l.base.With(redact(args)...), out: l.out}
}

func (l *jsonLogger) Shutdown() error { return l.out.close() }

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (n noopLogger) With(...any) Logger { return n }
func (noopLogger) Shutdown() error      { return nil }
