package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"recruitflow/internal/models"

	"github.com/valkey-io/valkey-go"
)

const defaultSnapshotTTL = 30 * time.Minute

// ValkeyTracker keeps snapshots in Valkey so a polling request can land
// on a different instance than the one driving the run. Each run has a
// single writer, so the read-modify-write on update only needs to be
// serialized within this process.
type ValkeyTracker struct {
	client valkey.Client
	ttl    time.Duration
	mu     sync.Mutex
}

func NewValkeyTracker(ctx context.Context, address, password string) (*ValkeyTracker, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{address},
		Password:    password,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create Valkey client: %w", err)
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping Valkey: %w", err)
	}

	return &ValkeyTracker{client: client, ttl: defaultSnapshotTTL}, nil
}

func (t *ValkeyTracker) Close() {
	t.client.Close()
}

func (t *ValkeyTracker) Reset(ctx context.Context, key Key, update models.ProgressUpdate) error {
	snap := models.ProgressSnapshot{}
	snap.Apply(update)

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.put(ctx, key, snap)
}

func (t *ValkeyTracker) Update(ctx context.Context, key Key, update models.ProgressUpdate) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap, ok, err := t.fetch(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	snap.Apply(update)
	return t.put(ctx, key, snap)
}

func (t *ValkeyTracker) Get(ctx context.Context, key Key) (models.ProgressSnapshot, bool, error) {
	return t.fetch(ctx, key)
}

func (t *ValkeyTracker) fetch(ctx context.Context, key Key) (models.ProgressSnapshot, bool, error) {
	cmd := t.client.B().Get().Key(t.storageKey(key)).Build()

	raw, err := t.client.Do(ctx, cmd).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return models.ProgressSnapshot{}, false, nil
		}
		return models.ProgressSnapshot{}, false, fmt.Errorf("unable to read progress for %s: %w", key, err)
	}

	var snap models.ProgressSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return models.ProgressSnapshot{}, false, fmt.Errorf("corrupt progress entry for %s: %w", key, err)
	}
	return snap, true, nil
}

func (t *ValkeyTracker) put(ctx context.Context, key Key, snap models.ProgressSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("unable to encode progress for %s: %w", key, err)
	}

	cmd := t.client.B().Set().
		Key(t.storageKey(key)).
		Value(string(data)).
		Ex(t.ttl).
		Build()

	if err := t.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("unable to store progress for %s: %w", key, err)
	}
	return nil
}

func (t *ValkeyTracker) storageKey(key Key) string {
	return "progress:" + key.String()
}
