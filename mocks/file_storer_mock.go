package mocks

import (
	"context"
	"io"
	"time"

	"recruitflow/internal/objectstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockFileStorer struct {
	mock.Mock
}

func (m *MockFileStorer) Upload(ctx context.Context, file io.Reader, jobID uuid.UUID, itemID, filename string) (objectstore.StoredFile, error) {
	args := m.Called(ctx, file, jobID, itemID, filename)

	return args.Get(0).(objectstore.StoredFile), args.Error(1)
}

func (m *MockFileStorer) Download(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockFileStorer) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)

	return args.String(0), args.Error(1)
}
