package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresMessageStore persists direct messages in Postgres.
type PostgresMessageStore struct {
	pool *pgxpool.Pool
}

// NewPostgresMessageStore creates a store backed by Postgres.
func NewPostgresMessageStore(pool *pgxpool.Pool) *PostgresMessageStore {
	return &PostgresMessageStore{pool: pool}
}

func (s *PostgresMessageStore) Create(ctx context.Context, m Message) (Message, error) {
	const q = `INSERT INTO messages (sender_id, receiver_id, content)
	           VALUES ($1, $2, $3)
	           RETURNING id, created_at, sender_id, receiver_id, content, read`
	var out Message
	err := s.pool.QueryRow(ctx, q, m.SenderID, m.ReceiverID, m.Content).
		Scan(&out.ID, &out.CreatedAt, &out.SenderID, &out.ReceiverID, &out.Content, &out.Read)
	return out, err
}

func (s *PostgresMessageStore) ListBetween(ctx context.Context, userA, userB string) ([]Message, error) {
	const q = `SELECT id, created_at, sender_id, receiver_id, content, read
	           FROM messages
	           WHERE (sender_id = $1 AND receiver_id = $2)
	              OR (sender_id = $2 AND receiver_id = $1)
	           ORDER BY created_at ASC, id ASC`
	rows, err := s.pool.Query(ctx, q, userA, userB)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.CreatedAt, &m.SenderID, &m.ReceiverID, &m.Content, &m.Read); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *PostgresMessageStore) MarkRead(ctx context.Context, senderID, receiverID string) error {
	const q = `UPDATE messages SET read = TRUE
	           WHERE sender_id = $1 AND receiver_id = $2 AND read = FALSE`
	_, err := s.pool.Exec(ctx, q, senderID, receiverID)
	return err
}

func (s *PostgresMessageStore) UnreadSummary(ctx context.Context, receiverID string) ([]UnreadSender, error) {
	const q = `SELECT sender_id, COUNT(*)
	           FROM messages
	           WHERE receiver_id = $1 AND read = FALSE
	           GROUP BY sender_id
	           ORDER BY sender_id`
	rows, err := s.pool.Query(ctx, q, receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UnreadSender
	for rows.Next() {
		var u UnreadSender
		if err := rows.Scan(&u.SenderID, &u.Count); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
