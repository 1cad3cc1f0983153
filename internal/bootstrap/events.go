package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/config"
	"github.com/osse101/FairyGrove_Go/internal/event"
	"github.com/osse101/FairyGrove_Go/internal/eventlog"
)

// EventSystem is the game event plumbing: services publish through Publisher,
// handlers are subscribed on Bus.
type EventSystem struct {
	Bus       event.Bus
	Publisher *event.ResilientPublisher
}

type eventSettings struct {
	maxRetries     int
	retryDelay     time.Duration
	deadLetterPath string
}

// resolveEventSettings fills unset or non-positive config values with defaults
func resolveEventSettings(cfg *config.Config) eventSettings {
	s := eventSettings{
		maxRetries:     cfg.EventMaxRetries,
		retryDelay:     cfg.EventRetryDelay,
		deadLetterPath: cfg.EventDeadLetterPath,
	}
	if s.maxRetries <= 0 {
		s.maxRetries = EventDefaultMaxRetries
	}
	if s.retryDelay <= 0 {
		s.retryDelay = EventDefaultRetryDelay
	}
	if s.deadLetterPath == "" {
		s.deadLetterPath = EventDefaultDeadLetterPath
	}
	return s
}

// InitializeEventSystem builds the in-memory game event bus, subscribes the
// metrics collector and the event log to it, and wraps it in a publisher that
// retries failed handlers and dead-letters the events it gives up on.
func InitializeEventSystem(cfg *config.Config, eventLog eventlog.Service) (*EventSystem, error) {
	settings := resolveEventSettings(cfg)

	if err := os.MkdirAll(filepath.Dir(settings.deadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	bus := event.NewMemoryBus()
	RegisterEventHandlers(bus, eventLog)

	publisher, err := event.NewResilientPublisher(bus, settings.maxRetries, settings.retryDelay, settings.deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", settings.maxRetries,
		"retry_delay", settings.retryDelay,
		"deadletter_path", settings.deadLetterPath,
		"event_types", len(event.AllTypes))

	return &EventSystem{Bus: bus, Publisher: publisher}, nil
}
