package mocks

import (
	"context"

	"recruitflow/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockResumeAnalyzer struct {
	mock.Mock
}

func (m *MockResumeAnalyzer) AnalyzeBatch(ctx context.Context, items []models.ResumeRef, reqs models.JobRequirements) ([]models.AnalysisOutcome, error) {
	args := m.Called(ctx, items, reqs)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.AnalysisOutcome), args.Error(1)
}
