package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/event"
	"github.com/osse101/FairyGrove_Go/internal/logger"
	"github.com/osse101/FairyGrove_Go/internal/repository"
)

// Service records published game events and serves a player's recent history
type Service interface {
	// Subscribe registers the event logger for every game event type
	Subscribe(bus event.Bus)

	// History returns a player's newest events first. limit is clamped to [1, MaxHistoryLimit].
	History(ctx context.Context, playerID string, limit int) ([]repository.LoggedEvent, error)

	// CleanupOldEvents removes events older than the retention period
	CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error)
}

type service struct {
	repo repository.EventLog
	now  func() time.Time
}

// NewService creates a new event logging service
func NewService(repo repository.EventLog) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Subscribe(bus event.Bus) {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}
}

func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgMarshalPayload, err)
	}

	createdAt := evt.At
	if createdAt.IsZero() {
		createdAt = s.now()
	}

	if err := s.repo.LogEvent(ctx, repository.LoggedEvent{
		EventType: string(evt.Type),
		PlayerID:  evt.PlayerID,
		Payload:   payload,
		CreatedAt: createdAt,
	}); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldError, err, LogFieldType, evt.Type)
		return fmt.Errorf("%s: %w", ErrMsgLogEvent, err)
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldPlayerID, evt.PlayerID)
	return nil
}

func (s *service) History(ctx context.Context, playerID string, limit int) ([]repository.LoggedEvent, error) {
	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	events, err := s.repo.EventsByPlayer(ctx, playerID, limit)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []repository.LoggedEvent{}
	}
	return events, nil
}

func (s *service) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, s.now().Add(-retention))
}
