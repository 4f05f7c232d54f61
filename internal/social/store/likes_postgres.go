package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLikeStore persists likes in Postgres. The schema carries partial
// unique indexes on (post_id, user_id) and (comment_id, user_id), which is
// what makes Toggle race-safe.
type PostgresLikeStore struct {
	pool *pgxpool.Pool
}

// NewPostgresLikeStore creates a store backed by Postgres.
func NewPostgresLikeStore(pool *pgxpool.Pool) *PostgresLikeStore {
	return &PostgresLikeStore{pool: pool}
}

func (s *PostgresLikeStore) Toggle(ctx context.Context, kind TargetKind, targetID int64, userID string) (bool, error) {
	var insert, del string
	switch kind {
	case TargetComment:
		insert = `INSERT INTO likes (comment_id, user_id) VALUES ($1, $2)
		          ON CONFLICT (comment_id, user_id) WHERE comment_id IS NOT NULL DO NOTHING`
		del = `DELETE FROM likes WHERE comment_id = $1 AND user_id = $2`
	default:
		insert = `INSERT INTO likes (post_id, user_id) VALUES ($1, $2)
		          ON CONFLICT (post_id, user_id) WHERE post_id IS NOT NULL DO NOTHING`
		del = `DELETE FROM likes WHERE post_id = $1 AND user_id = $2`
	}

	tag, err := s.pool.Exec(ctx, insert, targetID, userID)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() > 0 {
		return true, nil
	}
	// Conflict means the like already exists: this toggle removes it.
	if _, err := s.pool.Exec(ctx, del, targetID, userID); err != nil {
		return false, err
	}
	return false, nil
}

func (s *PostgresLikeStore) ListForTarget(ctx context.Context, kind TargetKind, targetID int64) ([]Like, error) {
	q := `SELECT id, post_id, comment_id, user_id FROM likes WHERE post_id = $1`
	if kind == TargetComment {
		q = `SELECT id, post_id, comment_id, user_id FROM likes WHERE comment_id = $1`
	}
	rows, err := s.pool.Query(ctx, q, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Like
	for rows.Next() {
		var l Like
		if err := rows.Scan(&l.ID, &l.PostID, &l.CommentID, &l.UserID); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *PostgresLikeStore) Count(ctx context.Context, kind TargetKind, targetID int64) (int, error) {
	q := `SELECT COUNT(*) FROM likes WHERE post_id = $1`
	if kind == TargetComment {
		q = `SELECT COUNT(*) FROM likes WHERE comment_id = $1`
	}
	var n int
	err := s.pool.QueryRow(ctx, q, targetID).Scan(&n)
	return n, err
}
