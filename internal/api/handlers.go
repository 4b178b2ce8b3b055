package api

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"recruitflow/internal/batch"
	"recruitflow/internal/models"
	"recruitflow/internal/objectstore"
	"recruitflow/internal/progress"

	"github.com/google/uuid"
)

// Runner drives one ingestion request end to end.
type Runner interface {
	Run(ctx context.Context, req models.IngestionRequest) (*models.IngestionSummary, error)
}

type ProgressReader interface {
	Get(ctx context.Context, key progress.Key) (models.ProgressSnapshot, bool, error)
}

type CandidateReader interface {
	CandidatesByJob(ctx context.Context, jobID uuid.UUID) ([]models.CandidateRecord, error)
}

// RequirementsSource is the job-posting collaborator; ownership and
// authorization checks happen upstream of these handlers.
type RequirementsSource interface {
	Requirements(ctx context.Context, jobID uuid.UUID) (models.JobRequirements, error)
}

type Uploader interface {
	Upload(ctx context.Context, file io.Reader, jobID uuid.UUID, itemID, filename string) (objectstore.StoredFile, error)
}

type APIHandler struct {
	runner     Runner
	tracker    ProgressReader
	candidates CandidateReader
	jobs       RequirementsSource
	uploader   Uploader
}

func NewAPIHandler(runner Runner, tracker ProgressReader, candidates CandidateReader, jobs RequirementsSource, uploader Uploader) *APIHandler {
	return &APIHandler{
		runner:     runner,
		tracker:    tracker,
		candidates: candidates,
		jobs:       jobs,
		uploader:   uploader,
	}
}

const maxUploadMemory = 32 << 20

// HandleIngestResumes accepts a multipart batch of resumes (raw files
// under "resumes" and/or already-stored refs under "refs"), uploads the
// raw ones, and starts the pipeline run in the background. The client
// polls the progress endpoint for the rest.
func (h *APIHandler) HandleIngestResumes(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()

	ownerID := r.Header.Get("X-Owner-ID")
	if ownerID == "" {
		http.Error(w, "Missing X-Owner-ID header.", http.StatusUnauthorized)
		return
	}

	jobID, err := uuid.Parse(r.PathValue("jobId"))
	if err != nil {
		http.Error(w, "Invalid job id format", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		http.Error(w, "Invalid multipart form.", http.StatusBadRequest)
		return
	}

	batchSize := models.DefaultBatchSize
	if raw := r.FormValue("batchSize"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			http.Error(w, "batchSize must be a positive integer.", http.StatusBadRequest)
			return
		}
		batchSize = parsed
	}

	var items []models.ResumeRef

	for _, ref := range r.Form["refs"] {
		if ref != "" {
			items = append(items, models.ResumeRef{Ref: ref})
		}
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["resumes"] {
			file, err := header.Open()
			if err != nil {
				http.Error(w, "An error occurred upon retrieving a file.", http.StatusBadRequest)
				return
			}

			itemID, _ := uuid.NewV7()
			stored, err := h.uploader.Upload(r.Context(), file, jobID, itemID.String(), header.Filename)
			file.Close()
			if err != nil {
				log.Printf("Failed to upload %s for job %s: %v", header.Filename, jobID, err)
				http.Error(w, "Failed to upload file", http.StatusInternalServerError)
				return
			}

			items = append(items, models.ResumeRef{
				Ref:      stored.Ref,
				Key:      stored.Key,
				Filename: header.Filename,
			})
		}
	}

	if len(items) == 0 {
		http.Error(w, "No resumes provided.", http.StatusBadRequest)
		return
	}

	requirements, err := h.jobs.Requirements(r.Context(), jobID)
	if err != nil {
		log.Printf("Error loading requirements for job %s: %v", jobID, err)
		http.Error(w, "Job not found or database error.", http.StatusNotFound)
		return
	}

	req := models.IngestionRequest{
		OwnerID:      ownerID,
		JobID:        jobID,
		Items:        items,
		BatchSize:    batchSize,
		Requirements: requirements,
	}

	// the run outlives this request; progress is exposed via polling
	go func() {
		start := time.Now()
		summary, err := h.runner.Run(context.Background(), req)
		if err != nil {
			log.Printf("Ingestion run for job %s failed: %v", jobID, err)
			return
		}
		log.Printf("Ingestion run for job %s finished in %v: %d/%d successful",
			jobID, time.Since(start), summary.Successful, summary.Total)
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	resp := map[string]any{
		"jobId":        jobID.String(),
		"total":        len(items),
		"totalBatches": batch.Count(len(items), batchSize),
		"batchSize":    batchSize,
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// HandleProgress returns the live snapshot for the polling UI. 404
// means the run has not started (or the process restarted).
func (h *APIHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()

	ownerID := r.Header.Get("X-Owner-ID")
	if ownerID == "" {
		http.Error(w, "Missing X-Owner-ID header.", http.StatusUnauthorized)
		return
	}

	jobID, err := uuid.Parse(r.PathValue("jobId"))
	if err != nil {
		http.Error(w, "Invalid job id format", http.StatusBadRequest)
		return
	}

	snapshot, ok, err := h.tracker.Get(r.Context(), progress.Key{OwnerID: ownerID, JobID: jobID})
	if err != nil {
		log.Printf("Error reading progress for job %s: %v", jobID, err)
		http.Error(w, "Failed to read progress.", http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "No ingestion in progress for this job.", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(snapshot); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func (h *APIHandler) HandleListCandidates(w http.ResponseWriter, r *http.Request) {

	defer r.Body.Close()

	jobID, err := uuid.Parse(r.PathValue("jobId"))
	if err != nil {
		http.Error(w, "Invalid job id format", http.StatusBadRequest)
		return
	}

	records, err := h.candidates.CandidatesByJob(r.Context(), jobID)
	if err != nil {
		log.Printf("Error listing candidates for job %s: %v", jobID, err)
		http.Error(w, "Failed to list candidates.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(records); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
