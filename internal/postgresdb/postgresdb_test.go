package postgresdb_test

import (
	"context"
	"os"
	"testing"
	"time"

	"recruitflow/internal/models"
	"recruitflow/internal/postgresdb"

	"github.com/google/uuid"
)

func setUpTestDB(t *testing.T) *postgresdb.Store {

	t.Helper()

	connString := os.Getenv("DB_TEST_URL")
	if connString == "" {
		t.Skip("DB_TEST_URL not set, skipping integration test")
	}

	ctx := context.Background()

	db, err := postgresdb.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("failed to ensure schema: %v", err)
	}

	t.Cleanup(func() {
		_, err := db.Pool.Exec(ctx, "TRUNCATE TABLE candidates")
		if err != nil {
			t.Fatalf("Failed to clean up candidates table: %v", err)
		}
		db.Close()
	})
	return db
}

func testProfile() models.CandidateProfile {
	return models.CandidateProfile{
		Name:            "John Doe",
		Email:           "john@example.com",
		MatchScore:      85,
		Recommendation:  "strong_match",
		Skills:          []string{"Go", "Postgres"},
		ExperienceYears: 6.5,
		AnalysisModel:   "gemini-2.5-flash",
		AnalyzedAt:      time.Now().UTC(),
	}
}

func TestSaveCandidate_Success(t *testing.T) {

	db := setUpTestDB(t)
	ctx := context.Background()

	jobID := uuid.New()
	sourceRef := "https://example.com/resumes/johndoe.pdf"

	record, err := db.SaveCandidate(ctx, testProfile(), sourceRef, jobID, "recruiter-1")
	if err != nil {
		t.Fatalf("SaveCandidate() returned an unexpected error: %v", err)
	}

	if record.ID == uuid.Nil {
		t.Fatal("SaveCandidate() returned a nil record ID")
	}
	if record.JobID != jobID || record.SourceRef != sourceRef {
		t.Errorf("record not scoped as expected: got %+v", record)
	}

	var savedName string
	err = db.Pool.QueryRow(ctx, "SELECT name FROM candidates WHERE id=$1", record.ID).Scan(&savedName)
	if err != nil {
		t.Fatalf("Failed to query back the inserted candidate: %v", err)
	}

	if savedName != "John Doe" {
		t.Errorf("name in database does not match: got %q, want %q", savedName, "John Doe")
	}
}

func TestSaveCandidate_RetrySameSourceIsIdempotent(t *testing.T) {

	db := setUpTestDB(t)
	ctx := context.Background()

	jobID := uuid.New()
	sourceRef := "https://example.com/resumes/janedoe.pdf"

	first, err := db.SaveCandidate(ctx, testProfile(), sourceRef, jobID, "recruiter-1")
	if err != nil {
		t.Fatalf("first SaveCandidate() failed: %v", err)
	}

	second, err := db.SaveCandidate(ctx, testProfile(), sourceRef, jobID, "recruiter-1")
	if err != nil {
		t.Fatalf("retried SaveCandidate() failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("retry created a second row: %s vs %s", first.ID, second.ID)
	}

	var count int
	if err := db.Pool.QueryRow(ctx, "SELECT count(*) FROM candidates WHERE job_id=$1", jobID).Scan(&count); err != nil {
		t.Fatalf("Failed to count candidates: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 candidate row, found %d", count)
	}
}

func TestCandidatesByJob_OrdersByScore(t *testing.T) {

	db := setUpTestDB(t)
	ctx := context.Background()

	jobID := uuid.New()

	low := testProfile()
	low.Name = "Low Match"
	low.MatchScore = 40

	high := testProfile()
	high.Name = "High Match"
	high.MatchScore = 95

	if _, err := db.SaveCandidate(ctx, low, "ref-low.pdf", jobID, "recruiter-1"); err != nil {
		t.Fatalf("SaveCandidate() failed: %v", err)
	}
	if _, err := db.SaveCandidate(ctx, high, "ref-high.pdf", jobID, "recruiter-1"); err != nil {
		t.Fatalf("SaveCandidate() failed: %v", err)
	}

	records, err := db.CandidatesByJob(ctx, jobID)
	if err != nil {
		t.Fatalf("CandidatesByJob() failed: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(records))
	}
	if records[0].Name != "High Match" {
		t.Errorf("expected best match first, got %q", records[0].Name)
	}
}
