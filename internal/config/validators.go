package config

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
)

// rule normalizes a non-empty raw value or rejects it.
type rule func(value string) (string, error)

var rules = map[string]rule{
	"page_size":            intBetween(1, 100),
	"search_debounce_ms":   positiveInt,
	"session_cleanup_days": positiveInt,
	"logging_max_files":    positiveInt,
	"catalog_source":       oneOf("local", "remote"),
	"logging_level":        oneOf("debug", "error", "info", "warn"),
	"api_url":              httpURL,
	"logging_enabled":      boolean,
	"debug":                boolean,
}

func positiveInt(value string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return "", fmt.Errorf("must be a positive integer")
	}
	return strconv.Itoa(n), nil
}

func intBetween(lo, hi int) rule {
	return func(value string) (string, error) {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < lo || n > hi {
			return "", fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return strconv.Itoa(n), nil
	}
}

func oneOf(allowed ...string) rule {
	return func(value string) (string, error) {
		v := strings.ToLower(strings.TrimSpace(value))
		if !slices.Contains(allowed, v) {
			return "", fmt.Errorf("must be one of: %s", strings.Join(allowed, ", "))
		}
		return v, nil
	}
}

func boolean(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return "true", nil
	case "0", "false", "no", "off":
		return "false", nil
	}
	return "", fmt.Errorf("must be one of: 1, true, yes, on, 0, false, no, off")
}

// httpURL accepts absolute http(s) URLs and drops trailing slashes.
func httpURL(value string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("must be an http(s) URL")
	}
	return strings.TrimRight(u.String(), "/"), nil
}
