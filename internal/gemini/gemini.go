package gemini

import (
	"context"

	"recruitflow/internal/models"
)

// ResumeAnalyzer scores a batch of stored resumes against a job's
// requirements. One logical round trip per batch; each input gets one
// outcome, correlated by ref. A returned error means the whole batch
// call failed.
type ResumeAnalyzer interface {
	AnalyzeBatch(ctx context.Context, items []models.ResumeRef, reqs models.JobRequirements) ([]models.AnalysisOutcome, error)
}
