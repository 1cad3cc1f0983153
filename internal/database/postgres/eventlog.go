package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/FairyGrove_Go/internal/repository"
)

const (
	queryLogEvent = `
		INSERT INTO event_log (event_type, player_id, payload, created_at)
		VALUES ($1, $2, $3, COALESCE($4, NOW()))`

	queryEventsByPlayer = `
		SELECT id, event_type, player_id, payload, created_at
		FROM event_log
		WHERE player_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	queryCleanupEvents = `DELETE FROM event_log WHERE created_at < $1`
)

// LogEvent appends one audit row
func (s *Store) LogEvent(ctx context.Context, evt repository.LoggedEvent) error {
	var created *time.Time
	if !evt.CreatedAt.IsZero() {
		created = &evt.CreatedAt
	}
	if _, err := s.db.Exec(ctx, queryLogEvent, evt.EventType, evt.PlayerID, evt.Payload, created); err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}
	return nil
}

// EventsByPlayer returns the player's newest events first
func (s *Store) EventsByPlayer(ctx context.Context, playerID string, limit int) ([]repository.LoggedEvent, error) {
	rows, err := s.db.Query(ctx, queryEventsByPlayer, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (repository.LoggedEvent, error) {
		var evt repository.LoggedEvent
		err := row.Scan(&evt.ID, &evt.EventType, &evt.PlayerID, &evt.Payload, &evt.CreatedAt)
		return evt, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan events: %w", err)
	}
	return out, nil
}

// CleanupOldEvents deletes events created before the cutoff
func (s *Store) CleanupOldEvents(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.db.Exec(ctx, queryCleanupEvents, before)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up events: %w", err)
	}
	return tag.RowsAffected(), nil
}
