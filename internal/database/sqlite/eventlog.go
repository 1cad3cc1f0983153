package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/repository"
)

const (
	queryLogEvent = `
		INSERT INTO event_log (event_type, player_id, payload, created_at)
		VALUES (?, ?, ?, ?)`

	queryEventsByPlayer = `
		SELECT id, event_type, player_id, payload, created_at
		FROM event_log
		WHERE player_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	queryCleanupEvents = `DELETE FROM event_log WHERE created_at < ?`
)

// LogEvent appends one audit row
func (s *Store) LogEvent(ctx context.Context, evt repository.LoggedEvent) error {
	created := evt.CreatedAt
	if created.IsZero() {
		created = s.now()
	}
	if _, err := s.db.ExecContext(ctx, queryLogEvent, evt.EventType, evt.PlayerID, string(evt.Payload), created.UnixMilli()); err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	return nil
}

// EventsByPlayer returns the player's newest events first
func (s *Store) EventsByPlayer(ctx context.Context, playerID string, limit int) ([]repository.LoggedEvent, error) {
	rows, err := s.db.QueryContext(ctx, queryEventsByPlayer, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	out := make([]repository.LoggedEvent, 0)
	for rows.Next() {
		var (
			evt     repository.LoggedEvent
			payload string
			created int64
		)
		if err := rows.Scan(&evt.ID, &evt.EventType, &evt.PlayerID, &payload, &created); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		evt.Payload = []byte(payload)
		evt.CreatedAt = domain.MillisToTime(created)
		out = append(out, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return out, nil
}

// CleanupOldEvents deletes events created before the cutoff
func (s *Store) CleanupOldEvents(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, queryCleanupEvents, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to clean up events: %w", err)
	}
	return res.RowsAffected()
}
