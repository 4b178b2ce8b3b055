package models

import (
	"time"

	"github.com/google/uuid"
)

// CandidateProfile is the structured result the analysis service
// extracts from one resume.
type CandidateProfile struct {
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	MatchScore      int       `json:"match_score"`
	Recommendation  string    `json:"recommendation"`
	Skills          []string  `json:"skills"`
	ExperienceYears float64   `json:"experience_years"`
	Education       string    `json:"education"`
	Summary         string    `json:"summary"`
	Location        string    `json:"location"`
	Links           []string  `json:"links"`
	AnalysisModel   string    `json:"analysis_model,omitempty"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
}

// AnalysisOutcome is the per-item result of a batch analysis call.
// Profile and ErrorReason are mutually exclusive; use the constructors.
type AnalysisOutcome struct {
	SourceRef   string            `json:"ref"`
	Success     bool              `json:"success"`
	Profile     *CandidateProfile `json:"candidate,omitempty"`
	ErrorReason string            `json:"error_reason,omitempty"`
}

func SuccessOutcome(ref string, profile CandidateProfile) AnalysisOutcome {
	return AnalysisOutcome{SourceRef: ref, Success: true, Profile: &profile}
}

func FailedOutcome(ref, reason string) AnalysisOutcome {
	return AnalysisOutcome{SourceRef: ref, Success: false, ErrorReason: reason}
}

// CandidateRecord is the durable row written for a successful analysis.
// The pipeline only ever creates these; downstream workflows own them
// after that.
type CandidateRecord struct {
	ID              uuid.UUID `json:"id" db:"id"`
	JobID           uuid.UUID `json:"job_id" db:"job_id"`
	UploaderID      string    `json:"uploader_id" db:"uploader_id"`
	SourceRef       string    `json:"source_ref" db:"source_ref"`
	Name            string    `json:"name" db:"name"`
	Email           string    `json:"email" db:"email"`
	Phone           string    `json:"phone" db:"phone"`
	MatchScore      int       `json:"match_score" db:"match_score"`
	Recommendation  string    `json:"recommendation" db:"recommendation"`
	Skills          []string  `json:"skills" db:"skills"`
	ExperienceYears float64   `json:"experience_years" db:"experience_years"`
	Education       string    `json:"education" db:"education"`
	Summary         string    `json:"summary" db:"summary"`
	Location        string    `json:"location" db:"location"`
	Links           []string  `json:"links" db:"links"`
	AnalysisModel   string    `json:"analysis_model" db:"analysis_model"`
	AnalyzedAt      time.Time `json:"analyzed_at" db:"analyzed_at"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
