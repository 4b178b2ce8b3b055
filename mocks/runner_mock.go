package mocks

import (
	"context"

	"recruitflow/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, req models.IngestionRequest) (*models.IngestionSummary, error) {
	args := m.Called(ctx, req)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.IngestionSummary), args.Error(1)
}
