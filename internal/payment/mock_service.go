package payment

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockService is a mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

var _ Service = (*MockService)(nil)

func (m *MockService) CreateInvoice(ctx context.Context, playerID, itemID string) (string, error) {
	args := m.Called(ctx, playerID, itemID)
	return args.String(0), args.Error(1)
}

func (m *MockService) HandleUpdate(ctx context.Context, update Update) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockService) IsApplied(ctx context.Context, playerID, chargeID string) (bool, error) {
	args := m.Called(ctx, playerID, chargeID)
	return args.Bool(0), args.Error(1)
}
