package engine

import (
	"fmt"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/domain"
)

// ApplyPremiumPurchase applies the effect of a Stars-paid item.
// Unknown ids and items without a document effect return doc unchanged.
func (e *Engine) ApplyPremiumPurchase(doc *domain.GameDocument, itemID string) *domain.GameDocument {
	item, ok := e.catalog.ShopItem(itemID)
	if !ok {
		return doc
	}

	switch {
	case item.Category == domain.CategorySlot:
		out := doc.Clone()
		out.UnlockedSlots = min(out.UnlockedSlots+item.Slots, domain.MaxGridSize)
		return out
	case item.ID == domain.ItemNoAds:
		out := doc.Clone()
		out.NoAds = true
		return out
	default:
		return doc
	}
}

// ApplySubscription activates a paid tier for SubscriptionDuration from now
func (e *Engine) ApplySubscription(doc *domain.GameDocument, tier string, now time.Time) (*domain.GameDocument, error) {
	benefit, ok := e.catalog.Subscription(tier)
	if !ok {
		return nil, fmt.Errorf("%w: subscription %s", domain.ErrUnknownItem, tier)
	}
	out := doc.Clone()
	out.Subscription = tier
	out.SubscriptionExpires = now.Add(domain.SubscriptionDuration).UnixMilli()
	if benefit.NoAds {
		out.NoAds = true
	}
	return out, nil
}

// ExpireSubscription drops a tier whose expiry has passed. The flag reports a change.
// NoAds is kept since it may have been bought separately.
func ExpireSubscription(doc *domain.GameDocument, now time.Time) (*domain.GameDocument, bool) {
	if doc.Subscription == domain.SubscriptionNone || doc.SubscriptionExpires == 0 {
		return doc, false
	}
	if now.UnixMilli() < doc.SubscriptionExpires {
		return doc, false
	}
	out := doc.Clone()
	out.Subscription = domain.SubscriptionNone
	out.SubscriptionExpires = 0
	return out, true
}
