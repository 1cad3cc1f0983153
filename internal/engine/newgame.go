package engine

import (
	"time"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/quest"
)

// NewGame builds the starting document for a first-time player.
// The referral code is assigned by the caller, which owns uniqueness.
func (e *Engine) NewGame(now time.Time) *domain.GameDocument {
	nowMs := now.UnixMilli()
	doc := &domain.GameDocument{
		SchemaVersion:       domain.CurrentSchemaVersion,
		UnlockedSlots:       domain.DefaultUnlockedSlots,
		Resources:           domain.ResourceBundle{Leaves: 10},
		Level:               1,
		LastOnline:          nowMs,
		DiscoveredCreatures: []domain.Discovery{},
		Buildings:           []domain.Building{},
		DailyQuests:         e.quests.GenerateDailyQuests(quest.DailyQuestCount),
		QuestLastReset:      nowMs,
		Subscription:        domain.SubscriptionNone,
	}

	starters := []struct {
		family string
		level  int
	}{
		{domain.FamilyFairyCat, 1},
		{domain.FamilyFairyCat, 1},
		{domain.FamilyMushroomSprite, 1},
	}
	for i, s := range starters {
		doc.Grid[i] = e.newCreature(s.family, s.level, now)
		discover(doc, s.family, s.level, now)
	}
	return doc
}
