package provider

import (
	"context"

	"github.com/stretchr/testify/mock"

	"currencyapp/internal/model"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) GetRates(ctx context.Context) (*model.Snapshot, error) {
	args := m.Called(ctx)
	snapshot, _ := args.Get(0).(*model.Snapshot)
	return snapshot, args.Error(1)
}
