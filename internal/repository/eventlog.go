package repository

import (
	"context"
	"encoding/json"
	"time"
)

// LoggedEvent is one row of the game event audit log
type LoggedEvent struct {
	ID        int64           `json:"id"`
	EventType string          `json:"eventType"`
	PlayerID  string          `json:"playerId"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"createdAt"`
}

// EventLog persists published game events for support and balance analysis
type EventLog interface {
	LogEvent(ctx context.Context, evt LoggedEvent) error
	// EventsByPlayer returns the newest events first, at most limit rows
	EventsByPlayer(ctx context.Context, playerID string, limit int) ([]LoggedEvent, error)
	// CleanupOldEvents deletes events created before the cutoff
	CleanupOldEvents(ctx context.Context, before time.Time) (int64, error)
}
