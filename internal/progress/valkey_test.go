package progress_test

import (
	"context"
	"os"
	"testing"

	"recruitflow/internal/models"
	"recruitflow/internal/progress"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setUpValkey(t *testing.T) *progress.ValkeyTracker {

	t.Helper()

	url := os.Getenv("VALKEY_TEST_URL")
	if url == "" {
		t.Skip("VALKEY_TEST_URL not set, skipping integration test")
	}

	ctx := context.Background()

	tracker, err := progress.NewValkeyTracker(ctx, url, os.Getenv("VALKEY_TEST_PASSWORD"))
	if err != nil {
		t.Fatalf("failed to connect to test valkey: %v", err)
	}

	t.Cleanup(tracker.Close)
	return tracker
}

func intp2(v int) *int { return &v }

func TestValkeyTracker_ResetUpdateGet(t *testing.T) {

	tracker := setUpValkey(t)
	ctx := context.Background()
	key := progress.Key{OwnerID: "recruiter-1", JobID: uuid.New()}

	require.NoError(t, tracker.Reset(ctx, key, models.ProgressUpdate{
		Total:        intp2(12),
		TotalBatches: intp2(3),
	}))

	require.NoError(t, tracker.Update(ctx, key, models.ProgressUpdate{
		Processed:  intp2(5),
		Successful: intp2(4),
		Failed:     intp2(1),
		Percentage: intp2(42),
	}))

	snap, ok, err := tracker.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 12, snap.Total)
	assert.Equal(t, 5, snap.Processed)
	assert.Equal(t, 4, snap.Successful)
	assert.Equal(t, 1, snap.Failed)
	assert.Equal(t, 42, snap.Percentage)
	assert.Equal(t, 3, snap.TotalBatches)
}

func TestValkeyTracker_UpdateAbsentKeyIsNoOp(t *testing.T) {

	tracker := setUpValkey(t)
	ctx := context.Background()
	key := progress.Key{OwnerID: "recruiter-1", JobID: uuid.New()}

	require.NoError(t, tracker.Update(ctx, key, models.ProgressUpdate{Processed: intp2(1)}))

	_, ok, err := tracker.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}
