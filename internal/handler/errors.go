package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// Request errors
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgUnauthenticated       = "Player identity missing"

	// Webhook errors
	ErrMsgWebhookForbidden = "Invalid webhook secret"
	ErrMsgWebhookFailed    = "Failed to process update"
)

// Log messages
const (
	LogMsgDecodeFailed       = "Failed to decode request"
	LogMsgRequestDecoded     = "Request decoded"
	LogMsgServiceError       = "Service call failed"
	LogMsgCatalogDrift       = "Catalog drift surfaced to client"
	LogMsgReadinessFailed    = "Readiness check failed"
	LogMsgEncodeFailed       = "Failed to encode JSON response"
	LogMsgWriteFailed        = "Failed to write response buffer"
	LogMsgWebhookRejected    = "Webhook rejected"
	LogMsgWebhookFailed      = "Webhook update failed"
	LogMsgMissingPlayerInCtx = "Authenticated route reached without player"
)

// Health check values
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgStoreDown      = "storage unavailable"
)
