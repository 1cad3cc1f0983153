// Package social grants referral rewards on top of the engine's placement rules.
// Duplicate and self-referral checks belong to the caller.
package social

import (
	"errors"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/engine"
)

// Reward describes what a referral grant produced
type Reward struct {
	CreatureID string                `json:"creatureId,omitempty"`
	Family     string                `json:"family,omitempty"`
	Resources  domain.ResourceBundle `json:"resources"`
}

// Rewards grants referral bonuses
type Rewards struct {
	engine *engine.Engine
}

// NewRewards creates a referral reward granter
func NewRewards(e *engine.Engine) *Rewards {
	return &Rewards{engine: e}
}

// GrantReferralReward gives the referred player a free base creature,
// or fallback leaves when the grid has no free unlocked slot. A gifted
// creature is not a discovery.
func (r *Rewards) GrantReferralReward(doc *domain.GameDocument, now time.Time) (*domain.GameDocument, Reward) {
	return r.grant(doc, now)
}

// GrantReferrerReward gives the referrer the same bonus and counts the referral
func (r *Rewards) GrantReferrerReward(doc *domain.GameDocument, now time.Time) (*domain.GameDocument, Reward) {
	out, reward := r.grant(doc, now)
	out.ReferralCount++
	return out, reward
}

func (r *Rewards) grant(doc *domain.GameDocument, now time.Time) (*domain.GameDocument, Reward) {
	out := doc.Clone()
	id, err := r.engine.PlaceCreature(out, RewardFamily, RewardLevel, now)
	if errors.Is(err, domain.ErrNoFreeSlot) {
		fallback := domain.ResourceBundle{Leaves: domain.ReferralFallbackLeaves}
		out.Resources = out.Resources.Add(fallback)
		return out, Reward{Resources: fallback}
	}
	return out, Reward{CreatureID: id, Family: RewardFamily}
}
