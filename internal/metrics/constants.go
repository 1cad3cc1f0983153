package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameRequestsRejected     = "grove_requests_rejected_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "grove_events_published_total"
	MetricNameEventHandlerErrors = "grove_event_handler_errors_total"
)

// Game metric names
const (
	MetricNameMerges            = "grove_merges_total"
	MetricNameCollects          = "grove_collects_total"
	MetricNameResourcesEarned   = "grove_resources_earned_total"
	MetricNameShopPurchases     = "grove_shop_purchases_total"
	MetricNamePremiumPurchases  = "grove_premium_purchases_total"
	MetricNameSubscriptions     = "grove_subscription_changes_total"
	MetricNameQuestClaims       = "grove_quest_claims_total"
	MetricNameReferralRewards   = "grove_referral_rewards_total"
	MetricNameCatalogDrift      = "grove_catalog_drift_total"
	MetricNameSaveConflicts     = "grove_save_conflicts_total"
	MetricNameNamingRequests    = "grove_naming_requests_total"
	MetricNameOperationDuration = "grove_operation_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextRequestsRejected     = "Total number of requests rejected before routing, by reason"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of game events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextMerges            = "Total number of merges by family and resulting level"
	HelpTextCollects          = "Total number of collect actions by source"
	HelpTextResourcesEarned   = "Total resources earned by resource and source"
	HelpTextShopPurchases     = "Total number of shop purchases by item"
	HelpTextPremiumPurchases  = "Total number of confirmed premium purchases by item"
	HelpTextSubscriptions     = "Total number of subscription activations and expiries by tier"
	HelpTextQuestClaims       = "Total number of quest rewards claimed by quest type"
	HelpTextReferralRewards   = "Total number of referral rewards granted"
	HelpTextCatalogDrift      = "Total number of creatures skipped because their definition is missing"
	HelpTextSaveConflicts     = "Total number of optimistic save conflicts"
	HelpTextNamingRequests    = "Total number of creature naming requests by outcome"
	HelpTextOperationDuration = "Player operation latency in seconds, including retries"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelItem      = "item"
	LabelFamily    = "family"
	LabelLevel     = "level"
	LabelResource  = "resource"
	LabelSource    = "source"
	LabelTier      = "tier"
	LabelAction    = "action"
	LabelOutcome   = "outcome"
	LabelOperation = "operation"
	LabelReason    = "reason"
)

// Request rejection reasons
const (
	ReasonRateLimited     = "rate_limited"
	ReasonInvalidInitData = "invalid_init_data"
)

// Subscription change actions
const (
	ActionActivated = "activated"
	ActionExpired   = "expired"
)

// Naming outcomes
const (
	OutcomeGenerated = "generated"
	OutcomeCached    = "cached"
	OutcomeFallback  = "fallback"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets ranges from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected shape"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)

// UnmatchedRoute labels requests that did not hit a registered route
const UnmatchedRoute = "unmatched"
