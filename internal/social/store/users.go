package store

import (
	"context"
	"time"
)

// User is a public profile. Password hashes are returned only through
// FindByLogin and never leave the auth handlers.
type User struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ImageURL  string    `json:"image_url,omitempty"`
}

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
	ImageURL     string
}

// UserStore defines user persistence.
type UserStore interface {
	// Create inserts a user; ErrConflict when username or email is taken.
	Create(ctx context.Context, p CreateUserParams) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	// FindByLogin matches email or username (case-insensitive) and also
	// returns the password hash for credential checks.
	FindByLogin(ctx context.Context, login string) (User, string, error)
	// Search returns users whose username contains the query
	// (case-insensitive), up to limit.
	Search(ctx context.Context, query string, limit int) ([]User, error)
	// SetImageURL updates the profile photo after an avatar upload.
	SetImageURL(ctx context.Context, userID, imageURL string) error
}
