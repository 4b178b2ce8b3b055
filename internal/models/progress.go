package models

// MaxProgressErrors caps the error log carried in a snapshot so a run
// with many failures cannot grow it unboundedly.
const MaxProgressErrors = 5

// ProgressSnapshot is the ephemeral view of one run, polled by the UI.
// Absence of a snapshot means the run has not started.
type ProgressSnapshot struct {
	Total        int         `json:"total"`
	Processed    int         `json:"processed"`
	Successful   int         `json:"successful"`
	Failed       int         `json:"failed"`
	CurrentBatch int         `json:"current_batch"`
	TotalBatches int         `json:"total_batches"`
	CurrentFile  string      `json:"current_file,omitempty"`
	Percentage   int         `json:"percentage"`
	IsComplete   bool        `json:"is_complete"`
	Errors       []FileError `json:"errors,omitempty"`
}

// ProgressUpdate is a partial snapshot: nil fields are left untouched
// by a merge, set fields overwrite. AppendErrors pushes onto the
// bounded error log instead of replacing it.
type ProgressUpdate struct {
	Total        *int
	Processed    *int
	Successful   *int
	Failed       *int
	CurrentBatch *int
	TotalBatches *int
	CurrentFile  *string
	Percentage   *int
	IsComplete   *bool
	AppendErrors []FileError
}

// Apply shallow-merges an update into the snapshot, keeping the error
// log to its most recent MaxProgressErrors entries.
func (s *ProgressSnapshot) Apply(u ProgressUpdate) {
	if u.Total != nil {
		s.Total = *u.Total
	}
	if u.Processed != nil {
		s.Processed = *u.Processed
	}
	if u.Successful != nil {
		s.Successful = *u.Successful
	}
	if u.Failed != nil {
		s.Failed = *u.Failed
	}
	if u.CurrentBatch != nil {
		s.CurrentBatch = *u.CurrentBatch
	}
	if u.TotalBatches != nil {
		s.TotalBatches = *u.TotalBatches
	}
	if u.CurrentFile != nil {
		s.CurrentFile = *u.CurrentFile
	}
	if u.Percentage != nil {
		s.Percentage = *u.Percentage
	}
	if u.IsComplete != nil {
		s.IsComplete = *u.IsComplete
	}
	if len(u.AppendErrors) > 0 {
		s.Errors = append(s.Errors, u.AppendErrors...)
		if len(s.Errors) > MaxProgressErrors {
			s.Errors = s.Errors[len(s.Errors)-MaxProgressErrors:]
		}
	}
}
