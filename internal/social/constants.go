package social

import "github.com/osse101/FairyGrove_Go/internal/domain"

// The creature handed out for a referral
const (
	RewardFamily = domain.FamilyFairyCat
	RewardLevel  = 1
)
