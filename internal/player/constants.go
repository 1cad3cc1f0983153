package player

// Operation names used for metrics and logs
const (
	OpGetState     = "get_state"
	OpMerge        = "merge"
	OpCollect      = "collect"
	OpCollectAll   = "collect_all"
	OpBuy          = "buy"
	OpClaimQuest   = "claim_quest"
	OpSync         = "sync"
	OpReferral     = "referral"
	OpPremium      = "premium"
	OpOfflineBonus = "offline_bonus"
	OpQuests       = "quests"
)

// Sources attached to resource events
const (
	SourceCollect    = "collect"
	SourceCollectAll = "collect_all"
	SourceOffline    = "offline"
)

// referralCodeAttempts bounds retries when a generated referral code collides
const referralCodeAttempts = 5

// DefaultMaxSaveRetries bounds load-apply-save attempts on version conflicts
const DefaultMaxSaveRetries = 3

// ExtraReferredBy is the document field recording who referred the player
const ExtraReferredBy = "referredBy"

// ExtraAppliedCharges is the document field listing Stars charge ids already applied
const ExtraAppliedCharges = "appliedCharges"

// Log messages
const (
	LogMsgPlayerCreated        = "Created new player"
	LogMsgSaveConflict         = "Save conflict, retrying"
	LogMsgCatalogDrift         = "Creature has no catalog definition"
	LogMsgPublishFailed        = "Failed to publish game event"
	LogMsgReferralApplied      = "Referral applied"
	LogMsgReferrerRewardFailed = "Failed to reward referrer"
	LogMsgStartParamRejected   = "Start parameter referral not applied"
	LogMsgPremiumApplied       = "Premium purchase applied"
	LogMsgPremiumUnapplied     = "Payment could not be applied"
	LogMsgPurchaseUnrecorded   = "Applied payment could not be recorded"
	LogMsgSubscriptionExpire   = "Subscription expired"
)

// Error messages
const (
	ErrMsgRetriesExhausted = "save retries exhausted"
	ErrMsgCodeExhausted    = "could not allocate a unique referral code"
)
