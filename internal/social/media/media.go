// Package media stores uploaded images (avatars, post pictures) and serves
// them back by id. Blobs live in the database so they share the store's
// lifecycle and backups.
package media

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no blob exists under the requested id.
var ErrNotFound = errors.New("media: blob not found")

// MaxBlobSize caps uploads at 5 MiB.
const MaxBlobSize = 5 << 20

// Blob is one stored upload.
type Blob struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	OwnerID     string    `json:"owner_id"`
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"-"`
}

// URL is the public path a stored blob is served from.
func (b Blob) URL() string {
	return fmt.Sprintf("/v1/media/%s", b.ID)
}

// BlobStore defines blob persistence.
type BlobStore interface {
	// Put stores a blob and returns it with id and created_at assigned.
	Put(ctx context.Context, ownerID, contentType string, data []byte) (Blob, error)
	// Get returns a blob by id, data included.
	Get(ctx context.Context, id string) (Blob, error)
}
