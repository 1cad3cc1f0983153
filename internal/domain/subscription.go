package domain

import "time"

// Purchase is an audit record of a confirmed premium (Stars) payment
type Purchase struct {
	PurchaseID string    `json:"purchase_id" db:"purchase_id"`
	PlayerID   string    `json:"player_id" db:"player_id"`
	ItemID     string    `json:"item_id" db:"item_id"`
	Amount     int64     `json:"amount" db:"amount"`
	Currency   string    `json:"currency" db:"currency"`
	ChargeID   string    `json:"charge_id" db:"charge_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Referral links a referred player to the player whose code they used
type Referral struct {
	ReferrerID string    `json:"referrer_id" db:"referrer_id"`
	ReferredID string    `json:"referred_id" db:"referred_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// IsSubscriptionTier reports whether tier names a paid tier
func IsSubscriptionTier(tier string) bool {
	switch tier {
	case SubscriptionSprout, SubscriptionGrove, SubscriptionEnchanted:
		return true
	default:
		return false
	}
}
