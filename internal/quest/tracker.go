package quest

import (
	"fmt"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/idgen"
)

// Tracker generates, refreshes and claims daily quests.
// It holds only read-only templates; every method is a pure document transform.
type Tracker struct {
	templates []domain.QuestTemplate
	ids       idgen.Generator
	perm      func(n int) []int
}

// NewTracker creates a tracker over the given template pool
func NewTracker(templates []domain.QuestTemplate, ids idgen.Generator) *Tracker {
	return &Tracker{
		templates: append([]domain.QuestTemplate(nil), templates...),
		ids:       ids,
		perm:      ids.Perm,
	}
}

// GenerateDailyQuests samples min(count, pool size) distinct templates without replacement
func (t *Tracker) GenerateDailyQuests(count int) []domain.Quest {
	if count > len(t.templates) {
		count = len(t.templates)
	}
	if count <= 0 {
		return []domain.Quest{}
	}

	order := t.perm(len(t.templates))
	quests := make([]domain.Quest, 0, count)
	for _, idx := range order[:count] {
		quests = append(quests, t.instantiate(t.templates[idx]))
	}
	return quests
}

func (t *Tracker) instantiate(tmpl domain.QuestTemplate) domain.Quest {
	return domain.Quest{
		ID:             t.ids.QuestID(),
		Type:           tmpl.Type,
		TargetAmount:   tmpl.TargetAmount,
		RewardLeaves:   tmpl.RewardLeaves,
		RewardDew:      tmpl.RewardDew,
		RewardBerries:  tmpl.RewardBerries,
		TargetResource: tmpl.TargetResource,
		TargetFamily:   tmpl.TargetFamily,
	}
}

// NeedsRefresh reports whether more than a day has passed since the last reset
func NeedsRefresh(doc *domain.GameDocument, now time.Time) bool {
	return now.UnixMilli()-doc.QuestLastReset > domain.QuestResetInterval.Milliseconds()
}

// RefreshIfNeeded replaces the quest list when the reset window has elapsed.
// The returned flag reports whether a new document was produced.
func (t *Tracker) RefreshIfNeeded(doc *domain.GameDocument, now time.Time) (*domain.GameDocument, bool) {
	if !NeedsRefresh(doc, now) {
		return doc, false
	}
	out := doc.Clone()
	out.DailyQuests = t.GenerateDailyQuests(DailyQuestCount)
	out.QuestLastReset = now.UnixMilli()
	return out, true
}

// Claim credits a completed quest's reward and stamps it as claimed
func (t *Tracker) Claim(doc *domain.GameDocument, questID string, now time.Time) (*domain.GameDocument, domain.ResourceBundle, error) {
	idx := doc.FindQuest(questID)
	if idx < 0 {
		return nil, domain.ResourceBundle{}, fmt.Errorf("%w: quest %s", domain.ErrNotFound, questID)
	}

	q := doc.DailyQuests[idx]
	if q.IsClaimed() {
		return nil, domain.ResourceBundle{}, fmt.Errorf("%w: quest %s", domain.ErrAlreadyClaimed, questID)
	}
	if !q.Completed {
		return nil, domain.ResourceBundle{}, fmt.Errorf("%w: quest %s (%d/%d)", domain.ErrNotCompleted, questID, q.CurrentAmount, q.TargetAmount)
	}

	reward := q.Reward()
	out := doc.Clone()
	claimedAt := now.UnixMilli()
	out.DailyQuests[idx].ClaimedAt = &claimedAt
	out.Resources = out.Resources.Add(reward)
	return out, reward, nil
}
