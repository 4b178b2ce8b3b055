package progress

import (
	"context"
	"sync"

	"recruitflow/internal/models"
)

// MemoryTracker keeps snapshots in a process-wide map. Lost on restart,
// which is acceptable for advisory progress state.
type MemoryTracker struct {
	mu      sync.RWMutex
	entries map[Key]*models.ProgressSnapshot
}

func NewMemoryTracker() *MemoryTracker {
	return &MemoryTracker{entries: make(map[Key]*models.ProgressSnapshot)}
}

func (t *MemoryTracker) Reset(_ context.Context, key Key, update models.ProgressUpdate) error {
	snap := &models.ProgressSnapshot{}
	snap.Apply(update)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[key] = snap
	return nil
}

func (t *MemoryTracker) Update(_ context.Context, key Key, update models.ProgressUpdate) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap, ok := t.entries[key]
	if !ok {
		return nil
	}
	snap.Apply(update)
	return nil
}

func (t *MemoryTracker) Get(_ context.Context, key Key) (models.ProgressSnapshot, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snap, ok := t.entries[key]
	if !ok {
		return models.ProgressSnapshot{}, false, nil
	}

	// copy, so a concurrent merge cannot mutate the reader's view
	out := *snap
	out.Errors = append([]models.FileError(nil), snap.Errors...)
	return out, true, nil
}
