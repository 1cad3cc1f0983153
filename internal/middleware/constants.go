package middleware

// HTTP error messages
const (
	// ErrMsgUnauthorized is returned when initData is missing or invalid
	ErrMsgUnauthorized = "Unauthorized"
)

// Default Values
const (
	// EmptyPlayerID represents an empty or missing player ID
	EmptyPlayerID = ""
)

// Log Messages
const (
	// LogMsgInitDataRejected indicates initData failed verification
	LogMsgInitDataRejected = "Telegram init data rejected"

	// LogMsgDevUserAuthenticated indicates the request used the development identity
	LogMsgDevUserAuthenticated = "Request authenticated as development user"
)
