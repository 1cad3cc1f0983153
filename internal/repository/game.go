package repository

import (
	"context"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/domain"
)

// GameRecord is a stored document with its optimistic-concurrency version
type GameRecord struct {
	PlayerID  string
	Doc       *domain.GameDocument
	Version   int64
	UpdatedAt time.Time
}

// GameStore persists one game document per player.
// Save succeeds only when expectedVersion matches the stored version.
type GameStore interface {
	LoadGame(ctx context.Context, playerID string) (*GameRecord, error)
	CreateGame(ctx context.Context, playerID string, doc *domain.GameDocument) (*GameRecord, error)
	SaveGame(ctx context.Context, playerID string, doc *domain.GameDocument, expectedVersion int64) (int64, error)
	FindPlayerByReferralCode(ctx context.Context, code string) (string, error)
}
