package postgresdb

import (
	"context"
	"errors"
	"fmt"

	"recruitflow/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*Store, error) {
	if connString == "" {
		return nil, fmt.Errorf("database connection string is required")
	}

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

// EnsureSchema creates the candidates table if it does not exist. The
// jobs table is owned by the surrounding application; only the columns
// the pipeline reads are assumed here.
func (s *Store) EnsureSchema(ctx context.Context) error {

	sql := `
		CREATE TABLE IF NOT EXISTS candidates (
			id               uuid PRIMARY KEY,
			job_id           uuid NOT NULL,
			uploader_id      text NOT NULL,
			source_ref       text NOT NULL,
			name             text NOT NULL DEFAULT '',
			email            text NOT NULL DEFAULT '',
			phone            text NOT NULL DEFAULT '',
			match_score      int  NOT NULL DEFAULT 0,
			recommendation   text NOT NULL DEFAULT '',
			skills           text[] NOT NULL DEFAULT '{}',
			experience_years double precision NOT NULL DEFAULT 0,
			education        text NOT NULL DEFAULT '',
			summary          text NOT NULL DEFAULT '',
			location         text NOT NULL DEFAULT '',
			links            text[] NOT NULL DEFAULT '{}',
			analysis_model   text NOT NULL DEFAULT '',
			analyzed_at      timestamptz NOT NULL,
			created_at       timestamptz NOT NULL DEFAULT now(),
			UNIQUE (job_id, source_ref)
		)
		`

	if _, err := s.Pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to ensure candidates schema: %w", err)
	}
	return nil
}

// SaveCandidate writes the durable row for one successful analysis. A
// retried call for the same (job, source_ref) returns the existing row
// instead of duplicating it.
func (s *Store) SaveCandidate(ctx context.Context, profile models.CandidateProfile, sourceRef string, jobID uuid.UUID, uploaderID string) (models.CandidateRecord, error) {

	id, err := uuid.NewV7()
	if err != nil {
		return models.CandidateRecord{}, fmt.Errorf("failed to generate candidate id: %w", err)
	}

	record := models.CandidateRecord{
		ID:              id,
		JobID:           jobID,
		UploaderID:      uploaderID,
		SourceRef:       sourceRef,
		Name:            profile.Name,
		Email:           profile.Email,
		Phone:           profile.Phone,
		MatchScore:      profile.MatchScore,
		Recommendation:  profile.Recommendation,
		Skills:          profile.Skills,
		ExperienceYears: profile.ExperienceYears,
		Education:       profile.Education,
		Summary:         profile.Summary,
		Location:        profile.Location,
		Links:           profile.Links,
		AnalysisModel:   profile.AnalysisModel,
		AnalyzedAt:      profile.AnalyzedAt,
	}

	sql := `
		INSERT INTO candidates (
			id, job_id, uploader_id, source_ref, name, email, phone,
			match_score, recommendation, skills, experience_years,
			education, summary, location, links, analysis_model, analyzed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (job_id, source_ref) DO NOTHING
		RETURNING id, created_at
		`

	err = s.Pool.QueryRow(
		ctx,
		sql,
		record.ID,
		record.JobID,
		record.UploaderID,
		record.SourceRef,
		record.Name,
		record.Email,
		record.Phone,
		record.MatchScore,
		record.Recommendation,
		record.Skills,
		record.ExperienceYears,
		record.Education,
		record.Summary,
		record.Location,
		record.Links,
		record.AnalysisModel,
		record.AnalyzedAt,
	).Scan(&record.ID, &record.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		// conflict path: the row already exists from an earlier attempt
		return s.candidateBySource(ctx, jobID, sourceRef)
	}
	if err != nil {
		return models.CandidateRecord{}, fmt.Errorf("failed to insert candidate: %w", err)
	}

	return record, nil
}

func (s *Store) candidateBySource(ctx context.Context, jobID uuid.UUID, sourceRef string) (models.CandidateRecord, error) {

	sql := candidateSelect + ` WHERE job_id = $1 AND source_ref = $2`

	rows, err := s.Pool.Query(ctx, sql, jobID, sourceRef)
	if err != nil {
		return models.CandidateRecord{}, fmt.Errorf("failed to fetch existing candidate: %w", err)
	}

	record, err := pgx.CollectOneRow(rows, scanCandidate)
	if err != nil {
		return models.CandidateRecord{}, fmt.Errorf("failed to fetch existing candidate: %w", err)
	}
	return record, nil
}

// CandidatesByJob lists the persisted records for one job posting,
// best match first.
func (s *Store) CandidatesByJob(ctx context.Context, jobID uuid.UUID) ([]models.CandidateRecord, error) {

	sql := candidateSelect + ` WHERE job_id = $1 ORDER BY match_score DESC, created_at`

	rows, err := s.Pool.Query(ctx, sql, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	records, err := pgx.CollectRows(rows, scanCandidate)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return records, nil
}

// Requirements reads the job posting projection passed verbatim to the
// analysis service.
func (s *Store) Requirements(ctx context.Context, jobID uuid.UUID) (models.JobRequirements, error) {

	var reqs models.JobRequirements

	sql := `
		SELECT title, description, required_skills, min_experience_years, max_experience_years
		FROM jobs
		WHERE id = $1
		`

	err := s.Pool.QueryRow(ctx, sql, jobID).Scan(
		&reqs.Title,
		&reqs.Description,
		&reqs.RequiredSkills,
		&reqs.MinExperience,
		&reqs.MaxExperience,
	)
	if err != nil {
		return models.JobRequirements{}, fmt.Errorf("failed to load job requirements: %w", err)
	}

	return reqs, nil
}

const candidateSelect = `
	SELECT id, job_id, uploader_id, source_ref, name, email, phone,
	       match_score, recommendation, skills, experience_years,
	       education, summary, location, links, analysis_model,
	       analyzed_at, created_at
	FROM candidates`

func scanCandidate(row pgx.CollectableRow) (models.CandidateRecord, error) {
	var r models.CandidateRecord
	err := row.Scan(
		&r.ID, &r.JobID, &r.UploaderID, &r.SourceRef, &r.Name, &r.Email,
		&r.Phone, &r.MatchScore, &r.Recommendation, &r.Skills,
		&r.ExperienceYears, &r.Education, &r.Summary, &r.Location,
		&r.Links, &r.AnalysisModel, &r.AnalyzedAt, &r.CreatedAt,
	)
	return r, err
}
