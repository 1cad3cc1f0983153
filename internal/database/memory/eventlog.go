package memory

import (
	"context"
	"slices"
	"time"

	"github.com/osse101/FairyGrove_Go/internal/repository"
)

// LogEvent appends an event; ids are assigned in insertion order
func (s *Store) LogEvent(ctx context.Context, evt repository.LoggedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEventID++
	evt.ID = s.nextEventID
	evt.Payload = slices.Clone(evt.Payload)
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = s.now()
	}
	s.events = append(s.events, evt)
	return nil
}

// EventsByPlayer returns the player's newest events first
func (s *Store) EventsByPlayer(ctx context.Context, playerID string, limit int) ([]repository.LoggedEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]repository.LoggedEvent, 0)
	for i := len(s.events) - 1; i >= 0 && len(out) < limit; i-- {
		if s.events[i].PlayerID == playerID {
			evt := s.events[i]
			evt.Payload = slices.Clone(evt.Payload)
			out = append(out, evt)
		}
	}
	return out, nil
}

// CleanupOldEvents drops events created before the cutoff
func (s *Store) CleanupOldEvents(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.events[:0]
	for _, evt := range s.events {
		if !evt.CreatedAt.Before(before) {
			kept = append(kept, evt)
		}
	}
	deleted := int64(len(s.events) - len(kept))
	s.events = kept
	return deleted, nil
}
