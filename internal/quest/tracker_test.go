package quest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FairyGrove_Go/internal/catalog"
	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/idgen"
)

var baseTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestTracker() *Tracker {
	return NewTracker(catalog.Default().QuestTemplates(), idgen.NewSeeded(1))
}

func docWithQuests(quests ...domain.Quest) *domain.GameDocument {
	return &domain.GameDocument{
		SchemaVersion:  domain.CurrentSchemaVersion,
		UnlockedSlots:  domain.DefaultUnlockedSlots,
		Level:          1,
		DailyQuests:    quests,
		QuestLastReset: baseTime.UnixMilli(),
		Subscription:   domain.SubscriptionNone,
	}
}

func TestGenerateDailyQuests(t *testing.T) {
	tr := newTestTracker()

	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"default count", DailyQuestCount, 4},
		{"whole pool", 7, 7},
		{"more than pool", 20, 7},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quests := tr.GenerateDailyQuests(tt.count)
			require.Len(t, quests, tt.want)

			ids := make(map[string]struct{})
			templates := make(map[domain.QuestTemplate]struct{})
			for _, q := range quests {
				assert.Zero(t, q.CurrentAmount)
				assert.False(t, q.Completed)
				assert.Nil(t, q.ClaimedAt)
				ids[q.ID] = struct{}{}
				templates[domain.QuestTemplate{
					Type: q.Type, TargetAmount: q.TargetAmount,
					RewardLeaves: q.RewardLeaves, RewardDew: q.RewardDew, RewardBerries: q.RewardBerries,
					TargetResource: q.TargetResource, TargetFamily: q.TargetFamily,
				}] = struct{}{}
			}
			assert.Len(t, ids, tt.want, "ids must be distinct")
			assert.Len(t, templates, tt.want, "templates sampled without replacement")
		})
	}
}

func TestGenerateDailyQuests_UsesPermutation(t *testing.T) {
	tr := newTestTracker()
	tr.perm = func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = n - 1 - i
		}
		return out
	}

	quests := tr.GenerateDailyQuests(2)
	require.Len(t, quests, 2)
	assert.Equal(t, domain.QuestTypeCollectType, quests[0].Type)
	assert.Equal(t, domain.FamilyBabyDragon, quests[0].TargetFamily)
	assert.Equal(t, domain.FamilyFairyCat, quests[1].TargetFamily)
}

func TestGenerateDailyQuests_SeededTrackersAgree(t *testing.T) {
	pool := catalog.Default().QuestTemplates()
	a := NewTracker(pool, idgen.NewSeeded(11))
	b := NewTracker(pool, idgen.NewSeeded(11))

	for i := 0; i < 5; i++ {
		assert.Equal(t, a.GenerateDailyQuests(DailyQuestCount), b.GenerateDailyQuests(DailyQuestCount))
	}
}

func TestRefreshIfNeeded(t *testing.T) {
	tr := newTestTracker()
	old := domain.Quest{ID: "q_old", Type: domain.QuestTypeMerge, TargetAmount: 3}
	doc := docWithQuests(old)

	t.Run("within window is a no-op", func(t *testing.T) {
		out, refreshed := tr.RefreshIfNeeded(doc, baseTime.Add(24*time.Hour))
		assert.False(t, refreshed)
		assert.Same(t, doc, out)
	})

	t.Run("after window replaces quests", func(t *testing.T) {
		now := baseTime.Add(24*time.Hour + time.Millisecond)
		out, refreshed := tr.RefreshIfNeeded(doc, now)
		require.True(t, refreshed)
		assert.Len(t, out.DailyQuests, DailyQuestCount)
		assert.Equal(t, now.UnixMilli(), out.QuestLastReset)
		assert.Equal(t, -1, out.FindQuest("q_old"))

		// input untouched
		assert.Equal(t, "q_old", doc.DailyQuests[0].ID)
		assert.Equal(t, baseTime.UnixMilli(), doc.QuestLastReset)
	})
}

func TestClaim(t *testing.T) {
	tr := newTestTracker()
	done := domain.Quest{ID: "q_done", Type: domain.QuestTypeMerge, TargetAmount: 3, CurrentAmount: 3, Completed: true, RewardLeaves: 50, RewardDew: 5}
	open := domain.Quest{ID: "q_open", Type: domain.QuestTypeMerge, TargetAmount: 3, CurrentAmount: 1}
	doc := docWithQuests(done, open)
	doc.Resources = domain.ResourceBundle{Leaves: 10}

	out, reward, err := tr.Claim(doc, "q_done", baseTime)
	require.NoError(t, err)
	assert.Equal(t, domain.ResourceBundle{Leaves: 50, Dew: 5}, reward)
	assert.Equal(t, domain.ResourceBundle{Leaves: 60, Dew: 5}, out.Resources)
	require.NotNil(t, out.DailyQuests[0].ClaimedAt)
	assert.Equal(t, baseTime.UnixMilli(), *out.DailyQuests[0].ClaimedAt)
	assert.Nil(t, doc.DailyQuests[0].ClaimedAt, "input must not be mutated")

	_, _, err = tr.Claim(out, "q_done", baseTime.Add(time.Minute))
	assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)

	_, _, err = tr.Claim(doc, "q_open", baseTime)
	assert.ErrorIs(t, err, domain.ErrNotCompleted)

	_, _, err = tr.Claim(doc, "q_missing", baseTime)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClaim_RepeatedAttemptsAlwaysRejected(t *testing.T) {
	tr := newTestTracker()
	doc := docWithQuests(domain.Quest{ID: "q1", Type: domain.QuestTypeMerge, TargetAmount: 1, CurrentAmount: 1, Completed: true, RewardLeaves: 5})

	out, _, err := tr.Claim(doc, "q1", baseTime)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, _, err := tr.Claim(out, "q1", baseTime.Add(time.Duration(i)*time.Hour))
		assert.ErrorIs(t, err, domain.ErrAlreadyClaimed)
	}
	assert.Equal(t, int64(5), out.Resources.Leaves)
}
