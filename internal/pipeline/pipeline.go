package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"recruitflow/internal/batch"
	apperrors "recruitflow/internal/errors"
	"recruitflow/internal/gemini"
	"recruitflow/internal/models"
	"recruitflow/internal/progress"

	"github.com/google/uuid"
)

const (
	// pacing after each item, smooths the progress bar for slow pollers
	// and throttles the effective rate against the analysis service
	DefaultItemDelay = 200 * time.Millisecond
	// pacing between batches, avoids back-to-back remote calls
	DefaultBatchDelay = 1 * time.Second
)

// CandidateSaver is the durable write for one successful analysis.
type CandidateSaver interface {
	SaveCandidate(ctx context.Context, profile models.CandidateProfile, sourceRef string, jobID uuid.UUID, uploaderID string) (models.CandidateRecord, error)
}

// Orchestrator drives one ingestion request to completion: batches the
// items, calls the analyzer once per batch, fans each result out to
// persistence or failure recording, and keeps the tracker current
// throughout. Batches run strictly in order; nothing inside a single
// run is parallel.
type Orchestrator struct {
	analyzer gemini.ResumeAnalyzer
	saver    CandidateSaver
	tracker  progress.Tracker

	ItemDelay  time.Duration
	BatchDelay time.Duration

	sleep func(time.Duration)
	log   *slog.Logger
}

func New(analyzer gemini.ResumeAnalyzer, saver CandidateSaver, tracker progress.Tracker) *Orchestrator {
	return &Orchestrator{
		analyzer:   analyzer,
		saver:      saver,
		tracker:    tracker,
		ItemDelay:  DefaultItemDelay,
		BatchDelay: DefaultBatchDelay,
		sleep:      time.Sleep,
		log:        slog.Default(),
	}
}

// Run executes one ingestion request. Item and batch failures are
// recorded and never abort the run; Run itself only errors on an empty
// request, an unreachable tracker, or cancellation between batches.
func (o *Orchestrator) Run(ctx context.Context, req models.IngestionRequest) (*models.IngestionSummary, error) {

	if len(req.Items) == 0 {
		return nil, apperrors.ErrEmptyRequest
	}

	size := req.BatchSize
	if size < 1 {
		size = models.DefaultBatchSize
	}

	plan := batch.Plan(req.Items, size)
	key := progress.Key{OwnerID: req.OwnerID, JobID: req.JobID}
	total := len(req.Items)

	err := o.tracker.Reset(ctx, key, models.ProgressUpdate{
		Total:        &total,
		TotalBatches: intp(len(plan)),
	})
	if err != nil {
		return nil, fmt.Errorf("progress tracker unavailable: %w", err)
	}

	o.log.Info("ingestion run started",
		"owner", req.OwnerID, "job", req.JobID,
		"items", total, "batches", len(plan), "batch_size", size)

	summary := &models.IngestionSummary{Total: total, BatchSize: size}
	counters := runCounters{total: total}

	for i, items := range plan {
		if i > 0 {
			o.sleep(o.BatchDelay)

			// cancellation is honored only at batch boundaries so the
			// in-flight batch's per-item accounting stays consistent
			if err := ctx.Err(); err != nil {
				o.mergeProgress(context.WithoutCancel(ctx), key, models.ProgressUpdate{
					IsComplete:  boolp(true),
					CurrentFile: strp(""),
				})
				return nil, err
			}
		}

		o.mergeProgress(ctx, key, models.ProgressUpdate{
			CurrentBatch: intp(i + 1),
			CurrentFile:  strp(fmt.Sprintf("Processing batch %d/%d...", i+1, len(plan))),
		})

		outcomes, err := o.analyzer.AnalyzeBatch(ctx, items, req.Requirements)
		if err != nil {
			o.failWholeBatch(ctx, key, items, err, summary, &counters)
		} else {
			o.handleBatch(ctx, key, items, outcomes, req, summary, &counters,
				i == len(plan)-1)
		}
		summary.BatchesProcessed++

		o.log.Info("batch finished",
			"owner", req.OwnerID, "job", req.JobID, "batch", i+1,
			"processed", counters.processed, "failed", counters.failed)
	}

	o.mergeProgress(ctx, key, models.ProgressUpdate{
		IsComplete:  boolp(true),
		CurrentFile: strp(""),
		Percentage:  intp(100),
	})

	summary.Successful = counters.successful
	summary.Failed = counters.failed

	o.log.Info("ingestion run complete",
		"owner", req.OwnerID, "job", req.JobID,
		"successful", summary.Successful, "failed", summary.Failed)

	return summary, nil
}

type runCounters struct {
	total      int
	processed  int
	successful int
	failed     int
}

func (c runCounters) percentage() int {
	if c.total == 0 {
		return 0
	}
	return int(math.Round(float64(c.processed) / float64(c.total) * 100))
}

// failWholeBatch records every item of a batch that errored as a unit,
// advancing the counters in a single tracker update.
func (o *Orchestrator) failWholeBatch(ctx context.Context, key progress.Key, items []models.ResumeRef, cause error, summary *models.IngestionSummary, counters *runCounters) {

	reason := fmt.Sprintf("batch processing failed: %v", cause)

	logged := make([]models.FileError, 0, len(items))
	for _, item := range items {
		entry := models.FileError{File: item.DisplayName(), Error: reason}
		summary.Failures = append(summary.Failures, entry)
		logged = append(logged, entry)
	}

	counters.processed += len(items)
	counters.failed += len(items)

	o.mergeProgress(ctx, key, models.ProgressUpdate{
		Processed:    intp(counters.processed),
		Failed:       intp(counters.failed),
		Percentage:   intp(counters.percentage()),
		AppendErrors: logged,
	})
}

// handleBatch fans a batch's outcomes out item by item, in the order
// the analyzer returned them. Items the analyzer did not echo back at
// all are failed explicitly rather than silently undercounted. The
// same ref may appear more than once in a batch, so matching counts
// per-ref multiplicity: every submitted item consumes exactly one
// outcome or becomes exactly one failure.
func (o *Orchestrator) handleBatch(ctx context.Context, key progress.Key, items []models.ResumeRef, outcomes []models.AnalysisOutcome, req models.IngestionRequest, summary *models.IngestionSummary, counters *runCounters, lastBatch bool) {

	pending := make(map[string]int, len(items))
	byRef := make(map[string]models.ResumeRef, len(items))
	for _, item := range items {
		pending[item.Ref]++
		if _, seen := byRef[item.Ref]; !seen {
			byRef[item.Ref] = item
		}
	}

	ordered := make([]models.AnalysisOutcome, 0, len(items))
	for _, outcome := range outcomes {
		switch {
		case pending[outcome.SourceRef] > 0:
			ordered = append(ordered, outcome)
			pending[outcome.SourceRef]--
		case byRef[outcome.SourceRef].Ref != "":
			o.log.Warn("analyzer returned extra outcome for already matched ref, dropping",
				"job", req.JobID, "ref", outcome.SourceRef)
		default:
			o.log.Warn("analyzer returned outcome for unknown ref, dropping",
				"job", req.JobID, "ref", outcome.SourceRef)
		}
	}
	for _, item := range items {
		// anything the service never answered for is its own failure kind
		if pending[item.Ref] > 0 {
			pending[item.Ref]--
			ordered = append(ordered, models.FailedOutcome(item.Ref, "no analysis result returned"))
		}
	}

	for idx, outcome := range ordered {
		item := byRef[outcome.SourceRef]
		o.handleItem(ctx, key, item, outcome, req, summary, counters)

		if !(lastBatch && idx == len(ordered)-1) {
			o.sleep(o.ItemDelay)
		}
	}
}

func (o *Orchestrator) handleItem(ctx context.Context, key progress.Key, item models.ResumeRef, outcome models.AnalysisOutcome, req models.IngestionRequest, summary *models.IngestionSummary, counters *runCounters) {

	counters.processed++
	name := item.DisplayName()

	var logged []models.FileError

	if outcome.Success {
		record, err := o.saver.SaveCandidate(ctx, *outcome.Profile, outcome.SourceRef, req.JobID, req.OwnerID)
		if err != nil {
			counters.failed++
			reason := fmt.Sprintf("database error: %v", err)
			summary.Failures = append(summary.Failures, models.FileError{File: name, Error: reason})
			logged = []models.FileError{{File: name, Error: reason}}
			o.log.Error("failed to persist candidate", "job", req.JobID, "file", name, "error", err)
		} else {
			counters.successful++
			summary.SavedRecords = append(summary.SavedRecords, record)
		}
	} else {
		counters.failed++
		summary.Failures = append(summary.Failures, models.FileError{File: name, Error: outcome.ErrorReason})
		logged = []models.FileError{{File: name, Error: "Analysis failed"}}
	}

	o.mergeProgress(ctx, key, models.ProgressUpdate{
		Processed:    intp(counters.processed),
		Successful:   intp(counters.successful),
		Failed:       intp(counters.failed),
		Percentage:   intp(counters.percentage()),
		CurrentFile:  &name,
		AppendErrors: logged,
	})
}

// mergeProgress pushes a partial update into the tracker. A mid-run
// tracker error freezes the polled view but must not abort the run,
// so it is surfaced in the logs only.
func (o *Orchestrator) mergeProgress(ctx context.Context, key progress.Key, update models.ProgressUpdate) {
	if err := o.tracker.Update(ctx, key, update); err != nil {
		o.log.Warn("progress update failed", "key", key.String(), "error", err)
	}
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }
func boolp(v bool) *bool    { return &v }
