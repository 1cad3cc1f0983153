package player

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/FairyGrove_Go/internal/domain"
	"github.com/osse101/FairyGrove_Go/internal/payment"
)

// MockService is a mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

var _ Service = (*MockService)(nil)

func (m *MockService) GetState(ctx context.Context, playerID, startParam string) (*State, error) {
	args := m.Called(ctx, playerID, startParam)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*State), args.Error(1)
}

func (m *MockService) OfflineBonus(ctx context.Context, playerID string) (domain.ResourceBundle, error) {
	args := m.Called(ctx, playerID)
	return args.Get(0).(domain.ResourceBundle), args.Error(1)
}

func (m *MockService) Merge(ctx context.Context, playerID, fromID, toID, lang string) (*MergeOutcome, error) {
	args := m.Called(ctx, playerID, fromID, toID, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*MergeOutcome), args.Error(1)
}

func (m *MockService) Collect(ctx context.Context, playerID, creatureID string) (*CollectOutcome, error) {
	args := m.Called(ctx, playerID, creatureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CollectOutcome), args.Error(1)
}

func (m *MockService) CollectAll(ctx context.Context, playerID string) (*CollectAllOutcome, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CollectAllOutcome), args.Error(1)
}

func (m *MockService) Buy(ctx context.Context, playerID, itemID string) (*BuyOutcome, error) {
	args := m.Called(ctx, playerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BuyOutcome), args.Error(1)
}

func (m *MockService) Quests(ctx context.Context, playerID string) ([]domain.Quest, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

func (m *MockService) ClaimQuest(ctx context.Context, playerID, questID string) (*ClaimOutcome, error) {
	args := m.Called(ctx, playerID, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ClaimOutcome), args.Error(1)
}

func (m *MockService) Sync(ctx context.Context, playerID string) (*domain.GameDocument, error) {
	args := m.Called(ctx, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameDocument), args.Error(1)
}

func (m *MockService) ApplyReferral(ctx context.Context, playerID, code string) (*ReferralOutcome, error) {
	args := m.Called(ctx, playerID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ReferralOutcome), args.Error(1)
}

func (m *MockService) ApplyPremium(ctx context.Context, c payment.Confirmation) (bool, error) {
	args := m.Called(ctx, c)
	return args.Bool(0), args.Error(1)
}
