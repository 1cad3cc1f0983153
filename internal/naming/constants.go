package naming

import "time"

// Generation limits
const (
	MinNameLength  = 2
	MaxNameLength  = 40
	DefaultTimeout = 3 * time.Second

	DefaultCacheSize = 4096
	DefaultCacheTTL  = 24 * time.Hour
)

// Chat completion request parameters
const (
	completionMaxTokens   = 20
	completionTemperature = 0.9
	roleUser              = "user"
)

// Log messages
const (
	LogMsgGenerationFailed = "Name generation failed, using fallback"
	LogMsgNameRejected     = "Generated name rejected"
)

// Error messages
const (
	ErrMsgUnexpectedStatus = "unexpected status from naming api"
	ErrMsgEmptyCompletion  = "naming api returned no choices"
)

// levelAdjectives describe creatures by level in the generation prompt
var levelAdjectives = []string{"tiny", "cute", "glowing", "radiant", "divine"}
