package bootstrap

import (
	"log/slog"

	"github.com/osse101/FairyGrove_Go/internal/event"
	"github.com/osse101/FairyGrove_Go/internal/eventlog"
	"github.com/osse101/FairyGrove_Go/internal/metrics"
)

// RegisterEventHandlers subscribes the metrics collector and the audit log to
// every game event. A retried publish re-runs both handlers.
func RegisterEventHandlers(bus event.Bus, eventLog eventlog.Service) {
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	eventLog.Subscribe(bus)
	slog.Info(LogMsgEventLogSubscribed)
}
