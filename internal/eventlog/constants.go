package eventlog

import "time"

// History limits
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// DefaultRetention is used when a cleanup job is built with a non-positive retention
const DefaultRetention = 30 * 24 * time.Hour

// Log messages - service events
const (
	LogMsgFailedToLogEvent = "Failed to log event to database"
	LogMsgEventLogged      = "Event logged to database"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)

// Error messages
const (
	ErrMsgMarshalPayload = "failed to encode event payload"
	ErrMsgLogEvent       = "failed to log event"
)

// Log field keys - structured logging fields
const (
	LogFieldType         = "type"
	LogFieldPlayerID     = "player_id"
	LogFieldError        = "error"
	LogFieldRetention    = "retention"
	LogFieldDuration     = "duration"
	LogFieldDeletedCount = "deletedCount"
)
