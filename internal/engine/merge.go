package engine

import (
	"fmt"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/quest"
)

// Merge combines two same-family, same-level creatures into one creature a level higher.
// The target slot receives the new creature and the source slot is cleared.
func (e *Engine) Merge(doc *domain.GameDocument, fromID, toID string, now time.Time) (*domain.GameDocument, MergeResult, error) {
	fromIdx, from := doc.FindCreature(fromID)
	toIdx, to := doc.FindCreature(toID)
	if from == nil || to == nil {
		return nil, MergeResult{}, fmt.Errorf("%w: creature %s or %s", domain.ErrNotFound, fromID, toID)
	}
	if fromIdx == toIdx {
		return nil, MergeResult{}, fmt.Errorf("%w: cannot merge a creature with itself", domain.ErrInvalidMerge)
	}
	if from.Family != to.Family || from.Level != to.Level {
		return nil, MergeResult{}, fmt.Errorf("%w: %s L%d vs %s L%d", domain.ErrInvalidMerge, from.Family, from.Level, to.Family, to.Level)
	}
	if from.Level >= domain.MaxLevel {
		return nil, MergeResult{}, fmt.Errorf("%w: %s L%d", domain.ErrMaxLevelReached, from.Family, from.Level)
	}

	newLevel := from.Level + 1
	xpGained := int64(newLevel * XPPerMergeLevel)

	out := doc.Clone()
	created := e.newCreature(from.Family, newLevel, now)
	out.Grid[toIdx] = created
	out.Grid[fromIdx] = nil

	out.Level, out.Experience = normalizeLevel(out.Level, out.Experience+xpGained)
	out.TotalMerges++

	if i := out.FindDiscovery(from.Family, newLevel); i >= 0 {
		out.DiscoveredCreatures[i].TotalMerged++
	} else {
		out.DiscoveredCreatures = append(out.DiscoveredCreatures, domain.Discovery{
			Family:       from.Family,
			Level:        newLevel,
			DiscoveredAt: now.UnixMilli(),
			TotalMerged:  1,
		})
	}

	quest.Track(out.DailyQuests, quest.MergeEvent())

	return out, MergeResult{
		NewCreatureID: created.ID,
		NewLevel:      newLevel,
		XPGained:      xpGained,
	}, nil
}
