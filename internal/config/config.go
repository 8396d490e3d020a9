// Package config loads pokeview settings. Precedence, lowest first:
// defaults, .env, POKEVIEW_* environment, the TOML file, then the
// environment again so it always wins over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/cristianoliveira/pokeview/internal/colors"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	// EnvPrefix is the prefix of environment variables that override keys.
	EnvPrefix = "POKEVIEW_"

	FileModeDir  os.FileMode = 0o755
	FileModeFile os.FileMode = 0o644
)

// Variables read by Load itself; they are not config keys.
var controlVars = map[string]bool{"config_path": true, "env_file": true, "session": true}

var (
	mu       sync.RWMutex
	values   map[string]string
	defaults map[string]string
)

// Load rebuilds the configuration from scratch.
func Load() {
	mu.Lock()
	defer mu.Unlock()

	defaults = defaultValues()
	values = make(map[string]string, len(defaults))
	for k, v := range defaults {
		values[k] = v
	}

	loadDotEnv()
	applyEnv()
	if err := applyFile(); err != nil {
		colors.Warning(err.Error())
	}
	applyEnv()
	normalize()
	deriveDatabasePaths()
	writeSample()
}

func defaultValues() map[string]string {
	home, _ := os.UserHomeDir()
	configHome := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	stateHome := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	return map[string]string{
		"config_dir":           filepath.Join(configHome, "pokeview"),
		"state_dir":            filepath.Join(stateHome, "pokeview"),
		"catalog_source":       "remote",
		"api_url":              "http://localhost:8484",
		"server_addr":          ":8484",
		"page_size":            "20",
		"search_debounce_ms":   "600",
		"session_cleanup_days": "7",
		"cors_allowed_origins": "http://localhost:5173,http://127.0.0.1:5173",
		"logging_enabled":      "false",
		"logging_level":        "info",
		"logging_max_files":    "10",
		"debug":                "false",
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// loadDotEnv reads POKEVIEW_ENV_FILE (default ./.env). Variables already set
// in the process are left alone.
func loadDotEnv() {
	path := envOr(EnvPrefix+"ENV_FILE", ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		colors.Warning(fmt.Sprintf("unable to load env file %s: %v", path, err))
	}
}

func applyEnv() {
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		if controlVars[key] {
			continue
		}
		values[key] = value
	}
}

// applyFile reads POKEVIEW_CONFIG_PATH, or config.toml in config_dir when it
// exists. Only TOML is understood.
func applyFile() error {
	path := os.Getenv(EnvPrefix + "CONFIG_PATH")
	if path == "" {
		path = filepath.Join(values["config_dir"], "config.toml")
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}
	if !strings.EqualFold(filepath.Ext(path), ".toml") {
		return fmt.Errorf("config file %s: only .toml is supported", path)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	for k, v := range raw {
		s, ok := stringify(v)
		if !ok {
			colors.Warning(fmt.Sprintf("unsupported config value type for %s: %T", k, v))
			continue
		}
		values[strings.ToLower(k)] = s
	}
	return nil
}

// stringify flattens a TOML value. Arrays of strings become comma lists.
func stringify(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return "", false
			}
			parts[i] = s
		}
		return strings.Join(parts, ","), true
	}
	return "", false
}

// normalize runs the rules; an empty or rejected value falls back to its
// default.
func normalize() {
	for key, check := range rules {
		value := values[key]
		if value == "" {
			values[key] = defaults[key]
			continue
		}
		normalized, err := check(value)
		if err != nil {
			colors.Warning(fmt.Sprintf("invalid %s value %q: %v; using default %q", key, value, err, defaults[key]))
			values[key] = defaults[key]
			continue
		}
		values[key] = normalized
	}
}

func deriveDatabasePaths() {
	stateDir := values["state_dir"]
	if stateDir == "" {
		return
	}
	for key, file := range map[string]string{"state_db": "state.db", "catalog_db": "catalog.db"} {
		if values[key] == "" {
			values[key] = filepath.Join(stateDir, file)
		}
	}
}

// writeSample writes the defaults to config.toml the first time pokeview
// runs.
func writeSample() {
	dir := values["config_dir"]
	if dir == "" {
		return
	}
	path := filepath.Join(dir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return
	}
	if err := os.MkdirAll(dir, FileModeDir); err != nil {
		colors.Debug(fmt.Sprintf("unable to create config dir %s: %v", dir, err))
		return
	}

	sample := make(map[string]any, len(defaults))
	for k, v := range defaults {
		sample[k] = typed(v)
	}
	data, err := toml.Marshal(sample)
	if err != nil {
		colors.Warning(fmt.Sprintf("unable to marshal sample config: %v", err))
		return
	}
	header := "# pokeview configuration (TOML).\n# POKEVIEW_<KEY> environment variables override these values.\n\n"
	if err := os.WriteFile(path, append([]byte(header), data...), FileModeFile); err != nil {
		colors.Warning(fmt.Sprintf("unable to write sample config to %s: %v", path, err))
	}
}

func typed(v string) any {
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v
}

// Get returns the value of key, or def when it is not set.
func Get(key, def string) string {
	mu.RLock()
	defer mu.RUnlock()
	if v, ok := values[key]; ok {
		return v
	}
	return def
}

// GetInt returns key as an integer, or def when unset or not a number.
func GetInt(key string, def int) int {
	n, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return def
	}
	return n
}

// GetBool returns key as a boolean, or def when unset or not a boolean.
func GetBool(key string, def bool) bool {
	v, err := boolean(Get(key, ""))
	if err != nil {
		return def
	}
	return v == "true"
}

// GetList splits a comma separated value, dropping blanks.
func GetList(key string) []string {
	var out []string
	for _, part := range strings.Split(Get(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
