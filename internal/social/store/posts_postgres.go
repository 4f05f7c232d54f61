package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPostStore persists posts in Postgres.
type PostgresPostStore struct {
	pool *pgxpool.Pool
}

// NewPostgresPostStore creates a store backed by Postgres.
func NewPostgresPostStore(pool *pgxpool.Pool) *PostgresPostStore {
	return &PostgresPostStore{pool: pool}
}

const postColumns = `id, created_at, content, image_url, user_id`

func (s *PostgresPostStore) Create(ctx context.Context, p Post) (Post, error) {
	const q = `INSERT INTO posts (content, image_url, user_id)
	           VALUES ($1, $2, $3)
	           RETURNING ` + postColumns
	return scanPost(s.pool.QueryRow(ctx, q, p.Content, p.ImageURL, p.UserID))
}

func (s *PostgresPostStore) List(ctx context.Context, limit int) ([]Post, error) {
	const q = `SELECT ` + postColumns + `
	           FROM posts
	           ORDER BY created_at DESC, id DESC
	           LIMIT $1`
	return s.queryPosts(ctx, q, normalizeLimit(limit))
}

func (s *PostgresPostStore) ListByUser(ctx context.Context, userID string, limit int) ([]Post, error) {
	const q = `SELECT ` + postColumns + `
	           FROM posts
	           WHERE user_id = $1
	           ORDER BY created_at DESC, id DESC
	           LIMIT $2`
	return s.queryPosts(ctx, q, userID, normalizeLimit(limit))
}

func (s *PostgresPostStore) Delete(ctx context.Context, postID int64, userID string) error {
	const q = `DELETE FROM posts WHERE id = $1 AND user_id = $2`
	tag, err := s.pool.Exec(ctx, q, postID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

func (s *PostgresPostStore) Get(ctx context.Context, postID int64) (Post, error) {
	const q = `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	p, err := scanPost(s.pool.QueryRow(ctx, q, postID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Post{}, ErrNotFound
	}
	return p, err
}

func (s *PostgresPostStore) queryPosts(ctx context.Context, q string, args ...any) ([]Post, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPost(row pgx.Row) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.CreatedAt, &p.Content, &p.ImageURL, &p.UserID)
	return p, err
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 10
	}
	return limit
}
