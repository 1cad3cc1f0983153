package eventlog

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/FairyGrove_Go/internal/repository"
)

// MockRepository is a mock implementation of repository.EventLog
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) LogEvent(ctx context.Context, evt repository.LoggedEvent) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockRepository) EventsByPlayer(ctx context.Context, playerID string, limit int) ([]repository.LoggedEvent, error) {
	args := m.Called(ctx, playerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LoggedEvent), args.Error(1)
}

func (m *MockRepository) CleanupOldEvents(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}
