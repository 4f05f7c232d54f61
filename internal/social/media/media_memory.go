package media

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryBlobStore is a development-only in-memory implementation.
type InMemoryBlobStore struct {
	mu    sync.Mutex
	blobs map[string]Blob
}

func NewInMemoryBlobStore() *InMemoryBlobStore {
	return &InMemoryBlobStore{blobs: make(map[string]Blob)}
}

func (s *InMemoryBlobStore) Put(_ context.Context, ownerID, contentType string, data []byte) (Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := Blob{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		OwnerID:     ownerID,
		ContentType: contentType,
		Data:        append([]byte(nil), data...),
	}
	s.blobs[b.ID] = b
	return b, nil
}

func (s *InMemoryBlobStore) Get(_ context.Context, id string) (Blob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blobs[id]
	if !ok {
		return Blob{}, ErrNotFound
	}
	return b, nil
}
