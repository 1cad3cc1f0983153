package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755
)

// =============================================================================
// Event System Configuration
// =============================================================================

const (
	// EventDefaultMaxRetries is the default number of retry attempts for failed event publishing
	EventDefaultMaxRetries = 5

	// EventDefaultRetryDelay is the default base delay between retry attempts (exponential backoff)
	EventDefaultRetryDelay = 2 * time.Second

	// EventDefaultDeadLetterPath is the default file path for dead-letter event logging
	EventDefaultDeadLetterPath = "logs/event_deadletter.jsonl"
)

// Log messages for event system initialization
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	LogMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
)

// =============================================================================
// Storage
// =============================================================================

const (
	LogMsgStoreReady       = "Game store ready"
	LogMsgMemoryStoreInUse = "Using in-memory store; progress is lost on restart"

	ErrMsgUnknownDriver    = "unknown database driver"
	ErrMsgFailedOpenStore  = "failed to open game store"
	ErrMsgFailedMigrations = "failed to migrate game store"
)

// =============================================================================
// Event Handler Configuration
// =============================================================================

const (
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgEventLogSubscribed         = "Event log subscribed"
)

// =============================================================================
// Background Workers
// =============================================================================

const (
	// WorkerPoolSize is the number of goroutines running background jobs
	WorkerPoolSize = 2

	// WorkerQueueSize bounds pending background jobs; extra ticks are dropped
	WorkerQueueSize = 16

	LogMsgWorkersStarted = "Background workers started"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgStoppingWorkers            = "Stopping background workers..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgClosingStore               = "Closing game store..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
	LogMsgStoreCloseFailed           = "Game store close failed"
)
