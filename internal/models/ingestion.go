package models

import (
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
)

const DefaultBatchSize = 5

// ResumeRef is one resume to ingest. Exactly one form is populated:
// either Ref/Key point at an already stored object, or Data/Filename
// carry raw bytes still pending upload.
type ResumeRef struct {
	Ref      string `json:"ref,omitempty"`
	Key      string `json:"key,omitempty"`
	Data     []byte `json:"-"`
	Filename string `json:"filename,omitempty"`
}

func (r ResumeRef) Stored() bool {
	return r.Ref != ""
}

// DisplayName returns the basename shown in progress updates and error
// logs, with any query string stripped off.
func (r ResumeRef) DisplayName() string {
	name := r.Ref
	if name == "" {
		name = r.Filename
	}
	if i := strings.Index(name, "?"); i >= 0 {
		name = name[:i]
	}
	return path.Base(name)
}

// StorageKey returns the object key for a stored resume. Falls back to
// the URL path when the caller only supplied a ref.
func (r ResumeRef) StorageKey() string {
	if r.Key != "" {
		return r.Key
	}
	u, err := url.Parse(r.Ref)
	if err != nil {
		return r.Ref
	}
	return strings.TrimPrefix(u.Path, "/")
}

type JobRequirements struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	MinExperience  int      `json:"min_experience_years"`
	MaxExperience  int      `json:"max_experience_years"`
}

// IngestionRequest is the input to one pipeline run.
type IngestionRequest struct {
	OwnerID      string
	JobID        uuid.UUID
	Items        []ResumeRef
	BatchSize    int
	Requirements JobRequirements
}

type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// IngestionSummary is returned to the caller once every batch of a run
// has been attempted.
type IngestionSummary struct {
	Total            int               `json:"total"`
	Successful       int               `json:"successful"`
	Failed           int               `json:"failed"`
	BatchesProcessed int               `json:"batches_processed"`
	BatchSize        int               `json:"batch_size"`
	SavedRecords     []CandidateRecord `json:"saved_records"`
	Failures         []FileError       `json:"failures"`
}
