package eventlog

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/FairyGrove_Go/internal/event"
	"github.com/osse101/FairyGrove_Go/internal/repository"
)

// MockService is a mock implementation of Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Subscribe(bus event.Bus) {
	m.Called(bus)
}

func (m *MockService) History(ctx context.Context, playerID string, limit int) ([]repository.LoggedEvent, error) {
	args := m.Called(ctx, playerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LoggedEvent), args.Error(1)
}

func (m *MockService) CleanupOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	args := m.Called(ctx, retention)
	return args.Get(0).(int64), args.Error(1)
}
