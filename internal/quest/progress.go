package quest

import "github.com/osse101/FairyGrove_Go/internal/domain"

// Event is a gameplay action that may advance quests
type Event struct {
	Kind   string
	Count  int64
	Family string
	Earned domain.ResourceBundle
}

// MergeEvent is emitted once per successful merge
func MergeEvent() Event {
	return Event{Kind: EventMerge, Count: 1}
}

// CollectEvent is emitted once per collect that earned something
func CollectEvent(family string, earned domain.ResourceBundle) Event {
	return Event{Kind: EventCollect, Family: family, Earned: earned}
}

// Track advances every open quest matching ev. It mutates quests in place,
// so callers pass the slice of a document they already cloned.
// Completed and claimed quests are left untouched.
func Track(quests []domain.Quest, ev Event) {
	for i := range quests {
		q := &quests[i]
		if q.Completed || q.IsClaimed() {
			continue
		}

		var delta int64
		switch {
		case q.Type == domain.QuestTypeMerge && ev.Kind == EventMerge:
			delta = ev.Count
		case q.Type == domain.QuestTypeCollect && ev.Kind == EventCollect:
			delta = ev.Earned.Get(q.TrackedResource())
		case q.Type == domain.QuestTypeCollectType && ev.Kind == EventCollect && q.TargetFamily == ev.Family:
			delta = ev.Earned.Get(q.TrackedResource())
		}
		if delta > 0 {
			q.CurrentAmount = min(q.CurrentAmount+delta, q.TargetAmount)
		}
		q.Completed = q.CurrentAmount >= q.TargetAmount
	}
}
