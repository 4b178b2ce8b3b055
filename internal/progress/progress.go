package progress

import (
	"context"

	"recruitflow/internal/models"

	"github.com/google/uuid"
)

// Key identifies the one live snapshot per (owner, job) pair.
type Key struct {
	OwnerID string
	JobID   uuid.UUID
}

func (k Key) String() string {
	return k.OwnerID + ":" + k.JobID.String()
}

// Tracker is the shared progress store polled by the UI while a run is
// in flight. Entries are advisory and ephemeral; the system of record
// is the persisted candidate rows and the final summary.
type Tracker interface {
	// Reset replaces any existing entry with a fresh snapshot built
	// from the given update applied to zero values.
	Reset(ctx context.Context, key Key, update models.ProgressUpdate) error

	// Update shallow-merges the set fields of update into the existing
	// snapshot. A missing entry is a no-op: callers reset first.
	Update(ctx context.Context, key Key, update models.ProgressUpdate) error

	// Get returns a copy of the current snapshot. ok is false when no
	// run has started for the key.
	Get(ctx context.Context, key Key) (snapshot models.ProgressSnapshot, ok bool, err error)
}
