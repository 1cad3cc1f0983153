// Package engine implements the game economy rules as pure document transforms.
//
// Every operation takes the current *domain.GameDocument plus parameters and
// returns a new document and a result. The input document is never modified;
// callers persist the returned copy. Timestamps are passed in, never read.
package engine

import (
	"time"

	"github.com/osse101/FairyGrove_Go/internal/catalog"
	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/idgen"
	"github.com/osse101/FairyGrove_Go/internal/quest"
)

// Engine binds the economy rules to a catalog and an id source
type Engine struct {
	catalog *catalog.Catalog
	ids     idgen.Generator
	quests  *quest.Tracker
}

// New creates an engine
func New(cat *catalog.Catalog, ids idgen.Generator) *Engine {
	return &Engine{
		catalog: cat,
		ids:     ids,
		quests:  quest.NewTracker(cat.QuestTemplates(), ids),
	}
}

// Catalog exposes the tables the engine evaluates against
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Quests exposes the quest tracker sharing this engine's id source
func (e *Engine) Quests() *quest.Tracker {
	return e.quests
}

// MergeResult describes a successful merge
type MergeResult struct {
	NewCreatureID string `json:"newCreatureId"`
	NewLevel      int    `json:"newLevel"`
	XPGained      int64  `json:"xpGained"`
}

// BuyResult describes a successful soft-currency purchase
type BuyResult struct {
	NewCreatureID string `json:"newCreatureId,omitempty"`
	Message       string `json:"message"`
}

func (e *Engine) newCreature(family string, level int, now time.Time) *domain.Creature {
	return &domain.Creature{
		ID:            e.ids.CreatureID(now),
		Family:        family,
		Level:         level,
		LastCollected: now.UnixMilli(),
	}
}

// PlaceNewCreature puts a fresh creature in the lowest free unlocked slot of doc
// and registers its discovery. doc must already be a private copy.
// It returns the new creature id, or domain.ErrNoFreeSlot.
func (e *Engine) PlaceNewCreature(doc *domain.GameDocument, family string, level int, now time.Time) (string, error) {
	id, err := e.PlaceCreature(doc, family, level, now)
	if err != nil {
		return "", err
	}
	discover(doc, family, level, now)
	return id, nil
}

// PlaceCreature is PlaceNewCreature for gifts: the discovery ledger is left alone.
func (e *Engine) PlaceCreature(doc *domain.GameDocument, family string, level int, now time.Time) (string, error) {
	slot := doc.FirstFreeSlot()
	if slot < 0 {
		return "", domain.ErrNoFreeSlot
	}
	c := e.newCreature(family, level, now)
	doc.Grid[slot] = c
	return c.ID, nil
}

// discover adds a ledger entry for (family, level) if it is new
func discover(doc *domain.GameDocument, family string, level int, now time.Time) {
	if doc.FindDiscovery(family, level) >= 0 {
		return
	}
	doc.DiscoveredCreatures = append(doc.DiscoveredCreatures, domain.Discovery{
		Family:       family,
		Level:        level,
		DiscoveredAt: now.UnixMilli(),
	})
}
