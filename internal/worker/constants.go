package worker

// Log messages - worker pool
const (
	// LogMsgWorkerJobFailed is logged when a worker fails to process a job
	LogMsgWorkerJobFailed = "Worker job failed"

	// LogMsgJobDropped is logged when a job is offered to a full or stopped pool
	LogMsgJobDropped = "Worker pool rejected job"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
