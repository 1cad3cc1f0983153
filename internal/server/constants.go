package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Security alert message templates
const (
	SecurityAlertFailedAuth = "SECURITY ALERT: repeated rejected Telegram init data"
	SecurityAlertHighRate   = "SECURITY ALERT: blocking high request rate"
)

// Detector thresholds
const (
	DetectorWindow           = 5 * time.Minute
	FailedAuthAlertThreshold = 5
	MaxRequestsPerWindow     = 1000
	HighRateLogEvery         = 100
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
)

// HTTP header names
const (
	HeaderAuthorization         = "Authorization"
	HeaderForwardedFor          = "X-Forwarded-For"
	HeaderRetryAfter            = "Retry-After"
	HeaderContentTypeOptions    = "X-Content-Type-Options"
	HeaderReferrerPolicy        = "Referrer-Policy"
	HeaderContentSecurityPolicy = "Content-Security-Policy"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
	CSPSelf                         = "'self'"
)

// Paths excluded from request logging
var QuietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}

// Header redaction marker
const (
	RedactedValue = "[REDACTED]"
)
