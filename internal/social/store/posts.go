package store

import (
	"context"
	"time"
)

// Post is a feed entry: text plus an optional uploaded image.
type Post struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
	ImageURL  *string   `json:"image_url,omitempty"`
	UserID    string    `json:"user_id"`
}

// PostStore defines post persistence.
type PostStore interface {
	Create(ctx context.Context, p Post) (Post, error)
	// List returns the newest posts first, up to limit.
	List(ctx context.Context, limit int) ([]Post, error)
	// ListByUser returns a user's newest posts first, up to limit.
	ListByUser(ctx context.Context, userID string, limit int) ([]Post, error)
	// Delete removes the row. Only the author may delete; otherwise
	// ErrNotFoundOrForbidden. Comments on the post are left in place.
	Delete(ctx context.Context, postID int64, userID string) error
	Get(ctx context.Context, postID int64) (Post, error)
}
