package media

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBlobStore persists blobs in a bytea column.
type PostgresBlobStore struct {
	pool *pgxpool.Pool
}

// NewPostgresBlobStore creates a store backed by Postgres.
func NewPostgresBlobStore(pool *pgxpool.Pool) *PostgresBlobStore {
	return &PostgresBlobStore{pool: pool}
}

func (s *PostgresBlobStore) Put(ctx context.Context, ownerID, contentType string, data []byte) (Blob, error) {
	b := Blob{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		ContentType: contentType,
		Data:        data,
	}
	err := s.pool.QueryRow(ctx,
		`INSERT INTO media_blobs (id, owner_id, content_type, data)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		b.ID, b.OwnerID, b.ContentType, b.Data,
	).Scan(&b.CreatedAt)
	if err != nil {
		return Blob{}, err
	}
	return b, nil
}

func (s *PostgresBlobStore) Get(ctx context.Context, id string) (Blob, error) {
	var b Blob
	err := s.pool.QueryRow(ctx,
		`SELECT id, created_at, owner_id, content_type, data
		 FROM media_blobs WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.CreatedAt, &b.OwnerID, &b.ContentType, &b.Data)
	if errors.Is(err, pgx.ErrNoRows) {
		return Blob{}, ErrNotFound
	}
	if err != nil {
		return Blob{}, err
	}
	return b, nil
}
