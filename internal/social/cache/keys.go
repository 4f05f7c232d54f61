package cache

import (
	"fmt"

	"github.com/example/social-platform/internal/social/store"
)

// Cache keys name the cached view they hold, parameterised by the ids the
// view depends on. Mutations invalidate by rebuilding the same keys.

// KeyPosts caches the global feed.
const KeyPosts = "posts"

// KeyComments caches the flat comment list of one post.
func KeyComments(postID int64) string {
	return fmt.Sprintf("comments:%d", postID)
}

// KeyReplyCountPost caches the total comment count of a post.
func KeyReplyCountPost(postID int64) string {
	return fmt.Sprintf("replycount:post:%d", postID)
}

// KeyReplyCountComment caches the direct reply count of a comment.
func KeyReplyCountComment(commentID int64) string {
	return fmt.Sprintf("replycount:comment:%d", commentID)
}

// KeyLikeCount caches the like count of a post or comment.
func KeyLikeCount(kind store.TargetKind, id int64) string {
	return fmt.Sprintf("likecount:%s:%d", kind, id)
}

// KeyUnread caches a user's per-sender unread message summary.
func KeyUnread(userID string) string {
	return fmt.Sprintf("unread:%s", userID)
}
