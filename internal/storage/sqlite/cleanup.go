package sqlite

import (
	"context"
	"fmt"
	"time"
)

// CleanupStaleSessions removes tab scoped preferences of sessions that have
// not written anything for daysThreshold days. It returns the number of
// sessions affected; with dryRun nothing is deleted.
func (s *Storage) CleanupStaleSessions(ctx context.Context, daysThreshold int, dryRun bool) (int, error) {
	if daysThreshold < 0 {
		return 0, fmt.Errorf("sqlite storage: days threshold must be >= 0")
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -daysThreshold).Format(time.RFC3339)

	const staleSessions = `SELECT session FROM session_prefs GROUP BY session HAVING MAX(updated_at) < ?`

	var sessions []string
	if err := s.db.SelectContext(ctx, &sessions, staleSessions, cutoff); err != nil {
		return 0, fmt.Errorf("sqlite storage: find stale sessions: %w", err)
	}
	if len(sessions) == 0 || dryRun {
		return len(sessions), nil
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM session_prefs WHERE session IN ("+staleSessions+")", cutoff); err != nil {
		return 0, fmt.Errorf("sqlite storage: cleanup stale sessions: %w", err)
	}
	return len(sessions), nil
}
