package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserStore persists users in Postgres.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStore creates a store backed by Postgres.
func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

const userColumns = `id::text, created_at, username, email, COALESCE(image_url, '')`

func (s *PostgresUserStore) Create(ctx context.Context, p CreateUserParams) (User, error) {
	id := uuid.New()
	const q = `INSERT INTO users (id, username, email, password_hash, image_url)
	           VALUES ($1, $2, $3, $4, NULLIF($5, ''))
	           RETURNING ` + userColumns
	u, err := scanUser(s.pool.QueryRow(ctx, q, id, p.Username, p.Email, p.PasswordHash, p.ImageURL))
	if err != nil {
		// unique violation
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrConflict
		}
		return User{}, err
	}
	return u, nil
}

func (s *PostgresUserStore) GetByID(ctx context.Context, id string) (User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id::text = $1`
	return s.getOne(ctx, q, id)
}

func (s *PostgresUserStore) GetByUsername(ctx context.Context, username string) (User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE lower(username) = lower($1)`
	return s.getOne(ctx, q, username)
}

func (s *PostgresUserStore) FindByLogin(ctx context.Context, login string) (User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return User{}, "", ErrNotFound
	}

	const q = `SELECT id::text, created_at, username, email, COALESCE(image_url, ''), password_hash
	           FROM users
	           WHERE lower(email) = lower($1) OR lower(username) = lower($1)
	           LIMIT 1`
	var u User
	var hash string
	err := s.pool.QueryRow(ctx, q, login).
		Scan(&u.ID, &u.CreatedAt, &u.Username, &u.Email, &u.ImageURL, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, "", ErrNotFound
		}
		return User{}, "", err
	}
	return u, hash, nil
}

func (s *PostgresUserStore) Search(ctx context.Context, query string, limit int) ([]User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []User{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 5
	}

	const q = `SELECT ` + userColumns + `
	           FROM users
	           WHERE username ILIKE '%' || $1 || '%'
	           ORDER BY username ASC
	           LIMIT $2`
	rows, err := s.pool.Query(ctx, q, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *PostgresUserStore) SetImageURL(ctx context.Context, userID, imageURL string) error {
	const q = `UPDATE users SET image_url = $1 WHERE id::text = $2`
	tag, err := s.pool.Exec(ctx, q, imageURL, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresUserStore) getOne(ctx context.Context, q string, arg any) (User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, q, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func scanUser(row pgx.Row) (User, error) {
	var u User
	err := row.Scan(&u.ID, &u.CreatedAt, &u.Username, &u.Email, &u.ImageURL)
	return u, err
}
