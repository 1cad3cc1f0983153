package bootstrap

import (
	"log/slog"

	"github.com/osse101/FairyGrove_Go/internal/config"
	"github.com/osse101/FairyGrove_Go/internal/eventlog"
	"github.com/osse101/FairyGrove_Go/internal/scheduler"
	"github.com/osse101/FairyGrove_Go/internal/worker"
)

// InitializeWorkers starts the background worker pool and schedules the
// event log retention cleanup on it.
func InitializeWorkers(cfg *config.Config, eventLog eventlog.Service) (*worker.Pool, *scheduler.Scheduler) {
	pool := worker.NewPool(WorkerPoolSize, WorkerQueueSize)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.EventLogCleanupInterval, eventlog.NewCleanupJob(eventLog, cfg.EventLogRetention))

	slog.Info(LogMsgWorkersStarted,
		"workers", WorkerPoolSize,
		"cleanup_interval", cfg.EventLogCleanupInterval,
		"retention", cfg.EventLogRetention)
	return pool, sched
}
