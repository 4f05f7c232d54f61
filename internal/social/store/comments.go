package store

import (
	"context"
	"time"
)

// TombstoneBody replaces the content of a deleted comment. The row is kept
// so replies stay anchored to their parent.
const TombstoneBody = "[deleted]"

// Comment represents a single comment row. ParentID is nil for top-level
// comments; when set it references another comment on the same post.
type Comment struct {
	ID        int64      `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	PostID    int64      `json:"post_id"`
	ParentID  *int64     `json:"parent_comment_id,omitempty"`
	Content   string     `json:"content"`
	UserID    string     `json:"user_id"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// CommentStore defines the contract for comment persistence.
type CommentStore interface {
	// Create inserts a comment and returns it with id and created_at assigned.
	Create(ctx context.Context, c Comment) (Comment, error)
	// ListByPost returns every comment of a post, newest first
	// (created_at DESC, id DESC). The caller builds the reply tree.
	ListByPost(ctx context.Context, postID int64) ([]Comment, error)
	// Delete tombstones a comment. Only the author may delete; otherwise
	// ErrNotFoundOrForbidden.
	Delete(ctx context.Context, commentID int64, userID string) error
	// CountReplies counts direct replies to a comment.
	CountReplies(ctx context.Context, parentID int64) (int, error)
	// CountByPost counts all comments on a post.
	CountByPost(ctx context.Context, postID int64) (int, error)
	// Get returns a single comment by id.
	Get(ctx context.Context, commentID int64) (Comment, error)
}
