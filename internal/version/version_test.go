package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		expected string
	}{
		{name: "development version without commit", version: "development", commit: "unknown", expected: "development"},
		{name: "release version with commit", version: "1.0.0", commit: "abc1234", expected: "1.0.0+abc1234"},
		{name: "unknown commit shows only version", version: "2.0.0", commit: "unknown", expected: "2.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origVersion, origCommit := Version, Commit
			defer func() {
				Version, Commit = origVersion, origCommit
			}()

			Version, Commit = tt.version, tt.commit
			assert.Equal(t, tt.expected, String())
		})
	}
}
