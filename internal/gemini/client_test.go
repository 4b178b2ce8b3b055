package gemini

import (
	"context"
	"errors"
	"testing"

	"recruitflow/internal/models"
	"recruitflow/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseResults_PlainJSON(t *testing.T) {

	text := `[{"ref":"a.pdf","success":true,"candidate":{"name":"Alice","match_score":88}},
		{"ref":"b.pdf","success":false,"error_reason":"image scan"}]`

	parsed, err := parseResults(text)
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	assert.True(t, parsed[0].Success)
	assert.Equal(t, "Alice", parsed[0].Candidate.Name)
	assert.Equal(t, 88, parsed[0].Candidate.MatchScore)

	assert.False(t, parsed[1].Success)
	assert.Equal(t, "image scan", parsed[1].ErrorReason)
}

func TestParseResults_StripsMarkdownFences(t *testing.T) {

	text := "```json\n[{\"ref\":\"a.pdf\",\"success\":true,\"candidate\":{\"name\":\"Alice\"}}]\n```"

	parsed, err := parseResults(text)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "a.pdf", parsed[0].Ref)
}

func TestParseResults_InvalidJSON(t *testing.T) {

	_, err := parseResults("the model rambled instead of returning JSON")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse analysis response")
}

func TestAnalyzeBatch_AllDownloadsFailLocally(t *testing.T) {

	files := new(mocks.MockFileStorer)
	files.On("Download", mock.Anything, mock.Anything).
		Return(nil, errors.New("no such key"))

	// no remote client needed: every item fails before the call
	client := &Client{files: files, model: DefaultModel}

	items := []models.ResumeRef{
		{Ref: "https://bucket.s3.amazonaws.com/resumes/j/a.pdf", Key: "resumes/j/a.pdf"},
		{Ref: "https://bucket.s3.amazonaws.com/resumes/j/b.pdf", Key: "resumes/j/b.pdf"},
	}

	outcomes, err := client.AnalyzeBatch(context.Background(), items, models.JobRequirements{})

	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	for i, outcome := range outcomes {
		assert.Equal(t, items[i].Ref, outcome.SourceRef)
		assert.False(t, outcome.Success)
		assert.Contains(t, outcome.ErrorReason, "could not read stored resume")
	}
}

func TestBuildPrompt_CarriesRequirements(t *testing.T) {

	prompt := buildPrompt(models.JobRequirements{
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Go", "Postgres"},
		MinExperience:  3,
		MaxExperience:  8,
		Description:    "Build ingestion services.",
	})

	assert.Contains(t, prompt, "Backend Engineer")
	assert.Contains(t, prompt, "Go, Postgres")
	assert.Contains(t, prompt, "3-8 years")
	assert.Contains(t, prompt, "Build ingestion services.")
}
