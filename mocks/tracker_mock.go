package mocks

import (
	"context"

	"recruitflow/internal/models"
	"recruitflow/internal/progress"

	"github.com/stretchr/testify/mock"
)

type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) Reset(ctx context.Context, key progress.Key, update models.ProgressUpdate) error {
	args := m.Called(ctx, key, update)

	return args.Error(0)
}

func (m *MockTracker) Update(ctx context.Context, key progress.Key, update models.ProgressUpdate) error {
	args := m.Called(ctx, key, update)

	return args.Error(0)
}

func (m *MockTracker) Get(ctx context.Context, key progress.Key) (models.ProgressSnapshot, bool, error) {
	args := m.Called(ctx, key)

	return args.Get(0).(models.ProgressSnapshot), args.Bool(1), args.Error(2)
}
