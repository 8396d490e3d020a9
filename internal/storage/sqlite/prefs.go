package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cristianoliveira/pokeview/internal/prefs"
)

// PrefsBackend stores browser scoped values in the prefs table and tab
// scoped values in session_prefs under a session id.
type PrefsBackend struct {
	storage *Storage
	session string
}

// Prefs returns a preference backend bound to session.
func (s *Storage) Prefs(session string) *PrefsBackend {
	return &PrefsBackend{storage: s, session: session}
}

func (b *PrefsBackend) Get(ctx context.Context, scope prefs.Scope, key string) (string, bool, error) {
	var value string
	var err error
	switch scope {
	case prefs.Tab:
		err = b.storage.db.GetContext(ctx, &value,
			"SELECT value FROM session_prefs WHERE session = ? AND key = ?", b.session, key)
	case prefs.Browser:
		err = b.storage.db.GetContext(ctx, &value, "SELECT value FROM prefs WHERE key = ?", key)
	default:
		return "", false, fmt.Errorf("sqlite storage: unknown scope %s", scope)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite storage: get %s pref %s: %w", scope, key, err)
	}
	return value, true, nil
}

func (b *PrefsBackend) Put(ctx context.Context, scope prefs.Scope, key, value string) error {
	var err error
	switch scope {
	case prefs.Tab:
		_, err = b.storage.db.ExecContext(ctx, `INSERT INTO session_prefs (session, key, value, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(session, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			b.session, key, value, utcNow())
	case prefs.Browser:
		_, err = b.storage.db.ExecContext(ctx, `INSERT INTO prefs (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, value, utcNow())
	default:
		return fmt.Errorf("sqlite storage: unknown scope %s", scope)
	}
	if err != nil {
		return fmt.Errorf("sqlite storage: put %s pref %s: %w", scope, key, err)
	}
	return nil
}

func (b *PrefsBackend) Delete(ctx context.Context, scope prefs.Scope, key string) error {
	var err error
	switch scope {
	case prefs.Tab:
		_, err = b.storage.db.ExecContext(ctx, "DELETE FROM session_prefs WHERE session = ? AND key = ?", b.session, key)
	case prefs.Browser:
		_, err = b.storage.db.ExecContext(ctx, "DELETE FROM prefs WHERE key = ?", key)
	default:
		return fmt.Errorf("sqlite storage: unknown scope %s", scope)
	}
	if err != nil {
		return fmt.Errorf("sqlite storage: delete %s pref %s: %w", scope, key, err)
	}
	return nil
}
