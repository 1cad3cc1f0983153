package engine

import (
	"time"

	"github.com/osse101/FairyGrove_Go/internal/catalog"
	"github.com/osse101/FairyGrove_Go/internal/domain"
)

// OfflineBonus computes the catch-up production for time spent offline.
// Elapsed time is capped at MaxOfflineDuration and anything under MinOfflineDuration
// earns nothing. The subscription multiplier applies once to the total; buildings do
// not apply. The document is only read.
func (e *Engine) OfflineBonus(doc *domain.GameDocument, now time.Time) domain.ResourceBundle {
	var total domain.ResourceBundle
	e.offlineTicks(doc, now, func(_ int, def catalog.CreatureDefinition, ticks int64) {
		total = total.Add(def.Production.Scale(ticks))
	})

	mult := e.catalog.SubscriptionMultiplier(doc.Subscription)
	var out domain.ResourceBundle
	for _, key := range domain.ResourceOrder {
		out = out.With(key, int64(float64(total.Get(key))*mult))
	}
	return out
}

// ApplyOfflineBonus credits the offline bonus, records it as the pending catch-up
// display and marks the player online as of now. Each creature's LastCollected moves
// forward by the ticks it was paid for so a following collect starts after them.
func (e *Engine) ApplyOfflineBonus(doc *domain.GameDocument, now time.Time) (*domain.GameDocument, domain.ResourceBundle) {
	bonus := e.OfflineBonus(doc, now)
	out := doc.Clone()
	out.Resources = out.Resources.Add(bonus)
	out.CatchupBonus = bonus
	out.LastOnline = now.UnixMilli()

	nowMs := now.UnixMilli()
	e.offlineTicks(doc, now, func(slot int, def catalog.CreatureDefinition, ticks int64) {
		c := out.Grid[slot]
		c.LastCollected = min(c.LastCollected+ticks*def.IntervalSeconds*1000, nowMs)
	})
	return out, bonus
}

// offlineTicks calls fn for every occupied slot that earned at least one tick
// in the capped offline window.
func (e *Engine) offlineTicks(doc *domain.GameDocument, now time.Time, fn func(slot int, def catalog.CreatureDefinition, ticks int64)) {
	offlineMs := min(now.UnixMilli()-doc.LastOnline, domain.MaxOfflineDuration.Milliseconds())
	if offlineMs < domain.MinOfflineDuration.Milliseconds() {
		return
	}
	for i, c := range doc.Grid {
		if c == nil {
			continue
		}
		def, err := e.catalog.Creature(c.Family, c.Level)
		if err != nil {
			continue
		}
		if ticks := offlineMs / (def.IntervalSeconds * 1000); ticks > 0 {
			fn(i, def, ticks)
		}
	}
}

// Touch marks the player online as of now without crediting anything
func Touch(doc *domain.GameDocument, now time.Time) *domain.GameDocument {
	out := doc.Clone()
	out.LastOnline = now.UnixMilli()
	return out
}
