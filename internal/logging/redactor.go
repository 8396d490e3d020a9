package logging

import (
	"strings"
	"unicode"
)

const redacted = "[REDACTED]"

var sensitiveSegments = map[string]bool{
	"secret":     true,
	"password":   true,
	"token":      true,
	"key":        true,
	"auth":       true,
	"credential": true,
	"cookie":     true,
}

// sensitiveKey reports whether one of the key's segments, split on anything
// that is not a letter or digit, names a secret. "api_token" is sensitive,
// "apitoken" and "secretary" are not.
func sensitiveKey(key string) bool {
	segments := strings.FieldsFunc(strings.ToLower(key), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, s := range segments {
		if sensitiveSegments[s] {
			return true
		}
	}
	return false
}

// redact returns a copy of the key/value list with sensitive values masked.
// A trailing key without a value is kept as is.
func redact(kv []any) []any {
	if len(kv) == 0 {
		return kv
	}
	out := append([]any(nil), kv...)
	for i := 0; i+1 < len(out); i += 2 {
		if key, ok := out[i].(string); ok && sensitiveKey(key) {
			out[i+1] = redacted
		}
	}
	return out
}
