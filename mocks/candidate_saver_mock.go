package mocks

import (
	"context"

	"recruitflow/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCandidateSaver struct {
	mock.Mock
}

func (m *MockCandidateSaver) SaveCandidate(ctx context.Context, profile models.CandidateProfile, sourceRef string, jobID uuid.UUID, uploaderID string) (models.CandidateRecord, error) {
	args := m.Called(ctx, profile, sourceRef, jobID, uploaderID)

	return args.Get(0).(models.CandidateRecord), args.Error(1)
}
