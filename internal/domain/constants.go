package domain

import "time"

// Grid and progression limits
const (
	MaxGridSize          = 40
	DefaultUnlockedSlots = 15
	MaxLevel             = 5
	MaxOfflineHours      = 8
	CurrentSchemaVersion = 2
)

// Offline catch-up windows
const (
	MaxOfflineDuration = MaxOfflineHours * time.Hour
	MinOfflineDuration = 30 * time.Second
	QuestResetInterval = 24 * time.Hour
)

// Resource keys, as they appear in catalog data and quest targets
const (
	ResourceLeaves  = "leaves"
	ResourceDew     = "dew"
	ResourceBerries = "berries"
)

// ResourceOrder is the canonical iteration order for resource components
var ResourceOrder = []string{ResourceLeaves, ResourceDew, ResourceBerries}

// Creature family identifiers
const (
	FamilyFairyCat       = "fairy_cat"
	FamilyBabyDragon     = "baby_dragon"
	FamilyMiniUnicorn    = "mini_unicorn"
	FamilyForestFox      = "forest_fox"
	FamilyMushroomSprite = "mushroom_sprite"
)

// Subscription tiers
const (
	SubscriptionNone      = "none"
	SubscriptionSprout    = "sprout"
	SubscriptionGrove     = "grove"
	SubscriptionEnchanted = "enchanted"
)

// SubscriptionDuration is how long a paid tier stays active
const SubscriptionDuration = 30 * 24 * time.Hour

// Shop item categories
const (
	CategoryCreature = "creature"
	CategoryBooster  = "booster"
	CategorySlot     = "slot"
	CategoryCosmetic = "cosmetic"
)

// Premium item identifiers with special handling
const (
	ItemNoAds = "no_ads"
)

// Referral reward values
const (
	ReferralFallbackLeaves = 50
)

// Currency code for premium purchases
const CurrencyStars = "XTR"
