package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCommentStore persists comments in Postgres.
type PostgresCommentStore struct {
	pool *pgxpool.Pool
}

// NewPostgresCommentStore creates a store backed by Postgres.
func NewPostgresCommentStore(pool *pgxpool.Pool) *PostgresCommentStore {
	return &PostgresCommentStore{pool: pool}
}

const commentColumns = `id, created_at, post_id, parent_comment_id, content, user_id, deleted_at`

func (s *PostgresCommentStore) Create(ctx context.Context, c Comment) (Comment, error) {
	const q = `INSERT INTO comments (post_id, parent_comment_id, content, user_id)
	           VALUES ($1, $2, $3, $4)
	           RETURNING ` + commentColumns
	row := s.pool.QueryRow(ctx, q, c.PostID, c.ParentID, c.Content, c.UserID)
	return scanComment(row)
}

func (s *PostgresCommentStore) ListByPost(ctx context.Context, postID int64) ([]Comment, error) {
	const q = `SELECT ` + commentColumns + `
	           FROM comments
	           WHERE post_id = $1
	           ORDER BY created_at DESC, id DESC`
	rows, err := s.pool.Query(ctx, q, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresCommentStore) Delete(ctx context.Context, commentID int64, userID string) error {
	const q = `UPDATE comments SET content = $1, deleted_at = now()
	           WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL`
	tag, err := s.pool.Exec(ctx, q, TombstoneBody, commentID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFoundOrForbidden
	}
	return nil
}

func (s *PostgresCommentStore) CountReplies(ctx context.Context, parentID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM comments WHERE parent_comment_id = $1`
	var n int
	err := s.pool.QueryRow(ctx, q, parentID).Scan(&n)
	return n, err
}

func (s *PostgresCommentStore) CountByPost(ctx context.Context, postID int64) (int, error) {
	const q = `SELECT COUNT(*) FROM comments WHERE post_id = $1`
	var n int
	err := s.pool.QueryRow(ctx, q, postID).Scan(&n)
	return n, err
}

func (s *PostgresCommentStore) Get(ctx context.Context, commentID int64) (Comment, error) {
	const q = `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	c, err := scanComment(s.pool.QueryRow(ctx, q, commentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Comment{}, ErrNotFound
	}
	return c, err
}

func scanComment(row pgx.Row) (Comment, error) {
	var c Comment
	err := row.Scan(&c.ID, &c.CreatedAt, &c.PostID, &c.ParentID, &c.Content, &c.UserID, &c.DeletedAt)
	return c, err
}
