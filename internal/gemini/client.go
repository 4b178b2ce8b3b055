package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	apperrors "recruitflow/internal/errors"
	"recruitflow/internal/models"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const DefaultModel = "gemini-2.5-flash"

// Downloader fetches a stored resume's bytes by object key.
type Downloader interface {
	Download(ctx context.Context, key string) ([]byte, error)
}

type Client struct {
	client *genai.Client
	files  Downloader
	model  string
}

func New(ctx context.Context, apiKey, model string, files Downloader) (*Client, error) {

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("API key error: %w", err)
	}

	if model == "" {
		model = DefaultModel
	}

	return &Client{client: client, files: files, model: model}, nil
}

// wire shape the model is prompted to return, one element per resume
type analysisResult struct {
	Ref         string                   `json:"ref"`
	Success     bool                     `json:"success"`
	Candidate   *models.CandidateProfile `json:"candidate,omitempty"`
	ErrorReason string                   `json:"error_reason,omitempty"`
}

// AnalyzeBatch downloads each stored resume, sends the whole batch to
// Gemini in a single request, and maps the echoed-back refs onto
// outcomes. Items whose bytes cannot be fetched are failed locally and
// excluded from the remote call rather than failing the batch.
func (c *Client) AnalyzeBatch(ctx context.Context, items []models.ResumeRef, reqs models.JobRequirements) ([]models.AnalysisOutcome, error) {

	outcomes := make([]models.AnalysisOutcome, 0, len(items))

	parts := []*genai.Part{genai.NewPartFromText(buildPrompt(reqs))}
	sent := 0
	for _, item := range items {
		data, err := c.files.Download(ctx, item.StorageKey())
		if err != nil {
			outcomes = append(outcomes, models.FailedOutcome(item.Ref,
				fmt.Sprintf("could not read stored resume: %v", err)))
			continue
		}
		parts = append(parts,
			genai.NewPartFromText(fmt.Sprintf("Resume ref: %s", item.Ref)),
			genai.NewPartFromBytes(data, contentTypeForRef(item)),
		)
		sent++
	}

	if sent == 0 {
		return outcomes, nil
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		st, ok := status.FromError(err)
		if ok {
			switch st.Code() {
			case codes.Unauthenticated, codes.PermissionDenied:
				return nil, fmt.Errorf("gemini authentication failed: %w", apperrors.ErrPermanentFailure)
			case codes.InvalidArgument:
				return nil, fmt.Errorf("gemini invalid input (400): %w", apperrors.ErrPermanentFailure)
			}
		}
		return nil, fmt.Errorf("failed to analyze resume batch: %w", err)
	}

	parsed, err := parseResults(result.Text())
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for _, res := range parsed {
		if !res.Success || res.Candidate == nil {
			reason := res.ErrorReason
			if reason == "" {
				reason = "analysis service could not read this resume"
			}
			outcomes = append(outcomes, models.FailedOutcome(res.Ref, reason))
			continue
		}

		profile := *res.Candidate
		profile.AnalysisModel = c.model
		profile.AnalyzedAt = now
		if profile.MatchScore < 0 {
			profile.MatchScore = 0
		}
		if profile.MatchScore > 100 {
			profile.MatchScore = 100
		}
		outcomes = append(outcomes, models.SuccessOutcome(res.Ref, profile))
	}

	return outcomes, nil
}

func parseResults(text string) ([]analysisResult, error) {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var parsed []analysisResult
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse analysis response: %w", err)
	}
	return parsed, nil
}

func buildPrompt(reqs models.JobRequirements) string {
	return fmt.Sprintf(`You are an expert technical recruiter. Analyze each of the attached resumes against this job posting.

Job title: %s
Required skills: %s
Experience range: %d-%d years
Description:
"""
%s
"""

Each resume is preceded by a text part "Resume ref: <ref>". Return ONLY a valid JSON array (no markdown, no explanation) with exactly one element per resume, echoing back its ref:
[
  {
    "ref": "<the ref given for this resume>",
    "success": true,
    "candidate": {
      "name": "", "email": "", "phone": "",
      "match_score": 0,
      "recommendation": "strong_match | possible_match | weak_match",
      "skills": [], "experience_years": 0.0,
      "education": "", "summary": "", "location": "", "links": []
    }
  }
]

match_score is an integer 0-100 against the required skills and experience range. If a resume is unreadable or clearly not a resume, set "success" to false and include "error_reason" instead of "candidate".`,
		reqs.Title,
		strings.Join(reqs.RequiredSkills, ", "),
		reqs.MinExperience,
		reqs.MaxExperience,
		reqs.Description,
	)
}

func contentTypeForRef(item models.ResumeRef) string {
	name := strings.ToLower(item.DisplayName())
	switch {
	case strings.HasSuffix(name, ".txt"):
		return "text/plain"
	default:
		return "application/pdf"
	}
}
