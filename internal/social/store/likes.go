package store

import (
	"context"
	"fmt"
)

// TargetKind names what a like attaches to.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// ParseTargetKind validates a kind from an untrusted source (URL segment).
func ParseTargetKind(s string) (TargetKind, error) {
	switch TargetKind(s) {
	case TargetPost:
		return TargetPost, nil
	case TargetComment:
		return TargetComment, nil
	}
	return "", fmt.Errorf("unknown target kind %q", s)
}

// Like is one user's like of one target. Exactly one of PostID or CommentID
// is set, never both.
type Like struct {
	ID        int64  `json:"id"`
	PostID    *int64 `json:"post_id,omitempty"`
	CommentID *int64 `json:"comment_id,omitempty"`
	UserID    string `json:"user_id"`
}

// LikeStore defines like persistence. Uniqueness of (target, user) is
// enforced by the store, not by check-then-act in the caller: Toggle inserts
// with conflict detection and falls back to delete when the row exists, so
// two racing toggles by the same user cannot produce duplicate rows.
type LikeStore interface {
	// Toggle flips the user's like on the target. Returns true when the
	// call resulted in a like, false when it removed one.
	Toggle(ctx context.Context, kind TargetKind, targetID int64, userID string) (bool, error)
	// ListForTarget returns all like rows for a target. Callers derive
	// "liked by me" by scanning for their own user id.
	ListForTarget(ctx context.Context, kind TargetKind, targetID int64) ([]Like, error)
	// Count returns the exact number of likes for a target.
	Count(ctx context.Context, kind TargetKind, targetID int64) (int, error)
}
