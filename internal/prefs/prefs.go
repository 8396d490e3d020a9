// Package prefs mirrors user selections into persistent key/value storage.
//
// Values are JSON encoded and live in one of two scopes: Tab, which lasts for
// a terminal session, and Browser, which persists across sessions. Storage
// failures are logged at debug level and otherwise ignored.
package prefs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cristianoliveira/pokeview/internal/logging"
)

// Scope selects the lifetime of a stored value.
type Scope int

const (
	// Tab values belong to the current terminal session.
	Tab Scope = iota
	// Browser values survive across sessions.
	Browser
)

func (s Scope) String() string {
	switch s {
	case Tab:
		return "tab"
	case Browser:
		return "browser"
	default:
		return fmt.Sprintf("scope(%d)", int(s))
	}
}

// Storage keys.
const (
	KeyFilterBy = "filterBy"
	KeySortBy   = "sortBy"
	KeyPage     = "page"
	KeySearch   = "search"
	KeyTeam     = "team"
	KeyUserID   = "userID"
)

// Backend stores raw JSON strings per scope.
type Backend interface {
	Get(ctx context.Context, scope Scope, key string) (value string, ok bool, err error)
	Put(ctx context.Context, scope Scope, key, value string) error
	Delete(ctx context.Context, scope Scope, key string) error
}

// Store is the JSON layer over a Backend.
type Store struct {
	backend Backend
}

// New creates a Store. A nil backend yields an in-memory store.
func New(backend Backend) *Store {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	return &Store{backend: backend}
}

// Write serializes value into scope under key.
func (s *Store) Write(scope Scope, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		logging.Debug("prefs: encode value", "scope", scope.String(), "key", key, "error", err)
		return
	}
	if err := s.backend.Put(context.Background(), scope, key, string(data)); err != nil {
		logging.Debug("prefs: write value", "scope", scope.String(), "key", key, "error", err)
	}
}

// Read decodes the stored value into dst. It returns false when the key is
// absent, unreadable or does not decode into dst.
func (s *Store) Read(scope Scope, key string, dst any) bool {
	raw, ok, err := s.backend.Get(context.Background(), scope, key)
	if err != nil {
		logging.Debug("prefs: read value", "scope", scope.String(), "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logging.Debug("prefs: decode value", "scope", scope.String(), "key", key, "error", err)
		return false
	}
	return true
}

// Remove deletes key from scope.
func (s *Store) Remove(scope Scope, key string) {
	if err := s.backend.Delete(context.Background(), scope, key); err != nil {
		logging.Debug("prefs: delete value", "scope", scope.String(), "key", key, "error", err)
	}
}

// ReadOr returns the stored value for key, or def when it is absent,
// unparsable or rejected by valid. In the fallback case def is written back
// so later reads are stable. valid may be nil.
func ReadOr[T any](s *Store, scope Scope, key string, def T, valid func(T) bool) T {
	var v T
	if s.Read(scope, key, &v) && (valid == nil || valid(v)) {
		return v
	}
	s.Write(scope, key, def)
	return def
}
