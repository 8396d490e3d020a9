// Package logging writes structured JSON logs for pokeview. Logging is off
// unless logging_enabled is set; the disabled logger drops everything.
package logging

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/pokeview/internal/config"
)

// filePrefix marks the files Init creates and rotate may delete.
const filePrefix = "pokeview_"

// Config holds logging configuration.
type Config struct {
	Enabled  bool
	Level    string
	MaxFiles int
	// Command and PID are attached to every entry.
	Command string
	PID     int
}

// DefaultConfig returns a disabled configuration for the current process.
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		MaxFiles: 10,
		Command:  filepath.Base(os.Args[0]),
		PID:      os.Getpid(),
	}
}

// FromGlobalConfig reads the logging_* keys. debug=true forces the debug
// level regardless of logging_level.
func FromGlobalConfig() Config {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetBool("logging_enabled", cfg.Enabled)
	cfg.Level = config.Get("logging_level", cfg.Level)
	cfg.MaxFiles = config.GetInt("logging_max_files", cfg.MaxFiles)
	if config.GetBool("debug", false) {
		cfg.Level = "debug"
	}
	return cfg
}

// LogDir returns {state_dir}/logs, or a directory under the system temp dir
// when the state dir cannot be written.
func LogDir() (string, error) {
	var candidates []string
	if stateDir := config.Get("state_dir", ""); stateDir != "" {
		candidates = append(candidates, filepath.Join(stateDir, "logs"))
	}
	fallback := filepath.Join(os.TempDir(), "pokeview", "logs")

	for _, dir := range candidates {
		if writable(dir) {
			return dir, nil
		}
	}
	if err := os.MkdirAll(fallback, 0o700); err != nil {
		return "", err
	}
	return fallback, nil
}

func writable(dir string) bool {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return false
	}
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
