package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/catalog"
	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/quest"
)

// CollectAllResult aggregates a collect pass over the whole grid
type CollectAllResult struct {
	Earned    domain.ResourceBundle `json:"earned"`
	Collected int                   `json:"collected"`
	// Drifted lists creatures whose definition no longer exists in the catalog
	Drifted []string `json:"drifted,omitempty"`
}

// Collect harvests the whole ticks a creature has produced since its last collect.
// Zero elapsed ticks is not an error: the input document is returned with a zero bundle.
func (e *Engine) Collect(doc *domain.GameDocument, creatureID string, now time.Time) (*domain.GameDocument, domain.ResourceBundle, error) {
	idx, c := doc.FindCreature(creatureID)
	if c == nil {
		return nil, domain.ResourceBundle{}, fmt.Errorf("%w: creature %s", domain.ErrNotFound, creatureID)
	}

	def, err := e.catalog.Creature(c.Family, c.Level)
	if err != nil {
		return nil, domain.ResourceBundle{}, fmt.Errorf("creature %s: %w", creatureID, err)
	}

	ticks := ticksSince(c.LastCollected, now, def.IntervalSeconds)
	if ticks == 0 {
		return doc, domain.ResourceBundle{}, nil
	}

	earned := e.produce(def.Production, ticks, doc.Subscription)
	earned = e.applyBuildings(earned, doc.Buildings)

	out := doc.Clone()
	out.Resources = out.Resources.Add(earned)
	collected := out.Grid[idx]
	collected.LastCollected = now.UnixMilli()
	collected.IsCollecting = false

	quest.Track(out.DailyQuests, quest.CollectEvent(c.Family, earned))

	return out, earned, nil
}

// CollectAll collects every occupied slot in grid order. Creatures with no catalog
// definition are skipped and reported in Drifted rather than failing the pass.
func (e *Engine) CollectAll(doc *domain.GameDocument, now time.Time) (*domain.GameDocument, CollectAllResult, error) {
	var result CollectAllResult
	cur := doc
	for _, c := range doc.Grid {
		if c == nil {
			continue
		}
		next, earned, err := e.Collect(cur, c.ID, now)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCreatureType) {
				result.Drifted = append(result.Drifted, c.ID)
				continue
			}
			return nil, CollectAllResult{}, err
		}
		if next != cur {
			result.Collected++
		}
		result.Earned = result.Earned.Add(earned)
		cur = next
	}
	return cur, result, nil
}

// ticksSince returns whole production intervals elapsed; a clock behind lastMs yields zero
func ticksSince(lastMs int64, now time.Time, intervalSeconds int64) int64 {
	elapsed := now.UnixMilli() - lastMs
	if elapsed <= 0 || intervalSeconds <= 0 {
		return 0
	}
	return elapsed / (intervalSeconds * 1000)
}

// produce scales a per-tick production rate by ticks and the subscription multiplier,
// truncating each component
func (e *Engine) produce(rate domain.ResourceBundle, ticks int64, tier string) domain.ResourceBundle {
	mult := e.catalog.SubscriptionMultiplier(tier)
	var out domain.ResourceBundle
	for _, key := range domain.ResourceOrder {
		out = out.With(key, int64(float64(rate.Get(key)*ticks)*mult))
	}
	return out
}

// applyBuildings runs each owned building over the running total in list order
func (e *Engine) applyBuildings(earned domain.ResourceBundle, buildings []domain.Building) domain.ResourceBundle {
	for _, b := range buildings {
		def, ok := e.catalog.Building(b.DefID)
		if !ok {
			continue
		}
		earned = applyBuilding(earned, def)
	}
	return earned
}

func applyBuilding(earned domain.ResourceBundle, def catalog.BuildingDefinition) domain.ResourceBundle {
	for _, key := range domain.ResourceOrder {
		if m, ok := def.Multipliers[key]; ok {
			earned = earned.With(key, int64(float64(earned.Get(key))*m))
		}
	}
	return earned.Add(def.Bonus)
}
