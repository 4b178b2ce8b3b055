package objectstore

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// StoredFile is the durable reference returned by an upload.
type StoredFile struct {
	Ref string `json:"ref"`
	Key string `json:"key"`
}

type FileStorer interface {
	// Upload stores a resume under a deterministic key scoped to the
	// job and item and returns its reference.
	Upload(ctx context.Context, file io.Reader, jobID uuid.UUID, itemID, filename string) (StoredFile, error)

	Download(ctx context.Context, key string) ([]byte, error)

	// PresignGet produces a time-limited readable link for a stored
	// object.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}
