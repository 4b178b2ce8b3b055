package mocks

import (
	"context"

	"recruitflow/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockRequirementsSource struct {
	mock.Mock
}

func (m *MockRequirementsSource) Requirements(ctx context.Context, jobID uuid.UUID) (models.JobRequirements, error) {
	args := m.Called(ctx, jobID)

	return args.Get(0).(models.JobRequirements), args.Error(1)
}

type MockCandidateReader struct {
	mock.Mock
}

func (m *MockCandidateReader) CandidatesByJob(ctx context.Context, jobID uuid.UUID) ([]models.CandidateRecord, error) {
	args := m.Called(ctx, jobID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.CandidateRecord), args.Error(1)
}
