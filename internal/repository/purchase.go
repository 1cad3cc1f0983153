package repository

import (
	"context"

	"github.com/osse101/FairyGrove_Go/internal/domain"
)

// Purchase defines the interface for the premium purchase ledger.
// Charge ids are unique; recording one twice returns ErrDuplicatePurchase.
type Purchase interface {
	RecordPurchase(ctx context.Context, purchase domain.Purchase) error
	ListPurchases(ctx context.Context, playerID string) ([]domain.Purchase, error)
}
