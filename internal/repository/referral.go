package repository

import (
	"context"

	"github.com/osse101/FairyGrove_Go/internal/domain"
)

// Referral defines the interface for referral persistence.
// A player can be referred at most once.
type Referral interface {
	GetReferrer(ctx context.Context, referredID string) (string, error)
	RecordReferral(ctx context.Context, referral domain.Referral) error
	CountReferrals(ctx context.Context, referrerID string) (int64, error)
}
