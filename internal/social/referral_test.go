package social

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FairyGrove_Go/internal/catalog"
	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/engine"
	"github.com/osse101/FairyGrove_Go/internal/idgen"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRewards() *Rewards {
	return NewRewards(engine.New(catalog.Default(), idgen.NewSeeded(3)))
}

func docWithSlots(unlocked, occupied int) *domain.GameDocument {
	doc := &domain.GameDocument{
		SchemaVersion: domain.CurrentSchemaVersion,
		UnlockedSlots: unlocked,
		Level:         1,
		Resources:     domain.ResourceBundle{Leaves: 5},
		Subscription:  domain.SubscriptionNone,
	}
	for i := 0; i < occupied; i++ {
		doc.Grid[i] = &domain.Creature{ID: string(rune('a' + i)), Family: domain.FamilyMushroomSprite, Level: 1}
	}
	return doc
}

func TestGrantReferralReward(t *testing.T) {
	r := newTestRewards()

	t.Run("places creature in lowest free slot", func(t *testing.T) {
		doc := docWithSlots(15, 2)
		out, reward := r.GrantReferralReward(doc, now)

		require.NotNil(t, out.Grid[2])
		assert.Equal(t, reward.CreatureID, out.Grid[2].ID)
		assert.Equal(t, domain.FamilyFairyCat, out.Grid[2].Family)
		assert.Equal(t, 1, out.Grid[2].Level)
		assert.Equal(t, int64(5), out.Resources.Leaves)
		assert.Zero(t, out.ReferralCount)
		assert.Nil(t, doc.Grid[2], "input must not be mutated")
	})

	t.Run("gift is not recorded as a discovery", func(t *testing.T) {
		doc := docWithSlots(15, 0)
		out, reward := r.GrantReferralReward(doc, now)

		require.NotEmpty(t, reward.CreatureID)
		assert.Empty(t, out.DiscoveredCreatures)
	})

	t.Run("falls back to leaves when full", func(t *testing.T) {
		doc := docWithSlots(3, 3)
		out, reward := r.GrantReferralReward(doc, now)

		assert.Empty(t, reward.CreatureID)
		assert.Equal(t, domain.ResourceBundle{Leaves: 50}, reward.Resources)
		assert.Equal(t, int64(55), out.Resources.Leaves)
		assert.Equal(t, 3, out.OccupiedSlots())
		assert.Equal(t, int64(5), doc.Resources.Leaves)
	})

	t.Run("locked slots are not used", func(t *testing.T) {
		doc := docWithSlots(2, 2)
		out, _ := r.GrantReferralReward(doc, now)
		assert.Nil(t, out.Grid[2])
		assert.Equal(t, int64(55), out.Resources.Leaves)
	})
}

func TestGrantReferrerReward(t *testing.T) {
	r := newTestRewards()

	doc := docWithSlots(15, 0)
	doc.ReferralCount = 2
	out, reward := r.GrantReferrerReward(doc, now)
	assert.NotEmpty(t, reward.CreatureID)
	assert.Equal(t, int64(3), out.ReferralCount)
	assert.Equal(t, int64(2), doc.ReferralCount)

	full := docWithSlots(3, 3)
	out, reward = r.GrantReferrerReward(full, now)
	assert.Empty(t, reward.CreatureID)
	assert.Equal(t, int64(1), out.ReferralCount)
	assert.Equal(t, int64(55), out.Resources.Leaves)
}
