package player

import (
	"time"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/engine"
	"github.com/osse101/FairyGrove_Go/internal/social"
)

// Clock supplies the current time to every operation
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// State is a player's document as returned at session start
type State struct {
	Game         *domain.GameDocument  `json:"gameState"`
	IsNew        bool                  `json:"isNewUser"`
	OfflineBonus domain.ResourceBundle `json:"offlineBonus"`
}

// MergeOutcome is a completed merge with the new creature's display name
type MergeOutcome struct {
	engine.MergeResult
	Family string               `json:"family"`
	Name   string               `json:"aiName"`
	Game   *domain.GameDocument `json:"gameState"`
}

// CollectOutcome is the result of collecting one creature
type CollectOutcome struct {
	Earned domain.ResourceBundle `json:"resources"`
	Game   *domain.GameDocument  `json:"gameState"`
}

// CollectAllOutcome is the result of collecting every creature
type CollectAllOutcome struct {
	Earned    domain.ResourceBundle `json:"resources"`
	Collected int                   `json:"collected"`
	Skipped   []string              `json:"skipped,omitempty"`
	Game      *domain.GameDocument  `json:"gameState"`
}

// BuyOutcome is a completed soft-currency purchase
type BuyOutcome struct {
	engine.BuyResult
	Game *domain.GameDocument `json:"gameState"`
}

// ClaimOutcome is a claimed quest reward
type ClaimOutcome struct {
	QuestID string                `json:"questId"`
	Reward  domain.ResourceBundle `json:"reward"`
	Game    *domain.GameDocument  `json:"gameState"`
}

// ReferralOutcome is what the referred player received
type ReferralOutcome struct {
	ReferrerID string               `json:"referrerId"`
	Reward     social.Reward        `json:"reward"`
	Game       *domain.GameDocument `json:"gameState"`
}
