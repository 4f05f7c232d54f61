package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/example/social-platform/internal/platform/analytics"
	"github.com/example/social-platform/internal/platform/api"
	"github.com/example/social-platform/internal/social/cache"
	"github.com/example/social-platform/internal/social/confirm"
	"github.com/example/social-platform/internal/social/store"
	"github.com/example/social-platform/internal/social/thread"
)

const maxCommentLen = 1000

type createCommentRequest struct {
	Content  string `json:"content"`
	ParentID *int64 `json:"parent_comment_id,omitempty"`
}

type commentsResponse struct {
	Comments []*thread.Node `json:"comments"`
	Total    int            `json:"total"`
}

func commentKey(id int64) string { return fmt.Sprintf("comment:%d", id) }

// GetComments handles GET /v1/posts/{post_id}/comments
//
// The store returns the flat newest-first list; the reply tree is rebuilt
// here on every uncached read.
func GetComments(cs store.CommentStore, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, ok := idParam(r, "post_id")
		if !ok {
			api.BadRequest(w, "INVALID_ID", "post_id must be a positive integer", "", nil)
			return
		}

		key := cache.KeyComments(postID)
		if c != nil {
			if v, ok := c.Get(key); ok {
				if resp, ok := v.(commentsResponse); ok {
					api.WriteJSON(w, http.StatusOK, resp)
					return
				}
			}
		}

		comments, err := cs.ListByPost(r.Context(), postID)
		if err != nil {
			api.Internal(w, "")
			return
		}
		roots := thread.Build(comments)
		resp := commentsResponse{Comments: roots, Total: len(comments)}
		if c != nil {
			c.Set(key, resp)
		}
		api.WriteJSON(w, http.StatusOK, resp)
	}
}

// CreateComment handles POST /v1/posts/{post_id}/comments
func CreateComment(cs store.CommentStore, ps store.PostStore, inv *cache.Invalidator, an *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}
		postID, ok := idParam(r, "post_id")
		if !ok {
			api.BadRequest(w, "INVALID_ID", "post_id must be a positive integer", "", nil)
			return
		}

		var req createCommentRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}
		content := strings.TrimSpace(req.Content)
		if content == "" {
			api.BadRequest(w, "EMPTY_CONTENT", "content must not be empty", "", nil)
			return
		}
		if len(content) > maxCommentLen {
			api.BadRequest(w, "CONTENT_TOO_LONG", fmt.Sprintf("content exceeds %d characters", maxCommentLen), "", nil)
			return
		}

		if _, err := ps.Get(r.Context(), postID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.NotFound(w, "NOT_FOUND", "post not found", "")
				return
			}
			api.Internal(w, "")
			return
		}
		if req.ParentID != nil {
			parent, err := cs.Get(r.Context(), *req.ParentID)
			if errors.Is(err, store.ErrNotFound) {
				api.BadRequest(w, "INVALID_PARENT", "parent comment not found", "", nil)
				return
			}
			if err != nil {
				api.Internal(w, "")
				return
			}
			if parent.PostID != postID {
				api.BadRequest(w, "INVALID_PARENT", "parent comment belongs to another post", "", nil)
				return
			}
		}

		created, err := cs.Create(r.Context(), store.Comment{
			PostID:   postID,
			ParentID: req.ParentID,
			Content:  content,
			UserID:   sess.UserID,
		})
		if err != nil {
			api.Internal(w, "")
			return
		}

		inv.CommentCreated(postID, req.ParentID)
		an.Publish(analytics.SubjectCommentCreated, "comment_created", sess.UserID, map[string]any{
			"post_id":    postID,
			"comment_id": created.ID,
			"is_reply":   req.ParentID != nil,
		})
		api.WriteJSON(w, http.StatusCreated, created)
	}
}

// RequestDeleteComment handles POST /v1/comments/{comment_id}/delete
func RequestDeleteComment(cs store.CommentStore, reg *confirm.Registry, inv *cache.Invalidator, an *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}
		commentID, ok := idParam(r, "comment_id")
		if !ok {
			api.BadRequest(w, "INVALID_ID", "comment_id must be a positive integer", "", nil)
			return
		}

		c, err := cs.Get(r.Context(), commentID)
		if errors.Is(err, store.ErrNotFound) {
			api.NotFound(w, "NOT_FOUND", "comment not found", "")
			return
		}
		if err != nil {
			api.Internal(w, "")
			return
		}
		if c.DeletedAt != nil {
			api.NotFound(w, "NOT_FOUND", "comment not found", "")
			return
		}

		del := func(ctx context.Context) error {
			if err := cs.Delete(ctx, commentID, c.UserID); err != nil {
				return err
			}
			inv.CommentDeleted(c.PostID, c.ParentID)
			an.Publish(analytics.SubjectCommentDeleted, "comment_deleted", c.UserID, map[string]any{
				"post_id":    c.PostID,
				"comment_id": commentID,
			})
			return nil
		}
		if err := reg.Request(sess, commentKey(commentID), c.UserID, del); err != nil {
			api.Forbidden(w, "FORBIDDEN", "only the author may delete a comment", "")
			return
		}
		api.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "pending"})
	}
}

// ConfirmDeleteComment handles DELETE /v1/comments/{comment_id}
func ConfirmDeleteComment(reg *confirm.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}
		commentID, ok := idParam(r, "comment_id")
		if !ok {
			api.BadRequest(w, "INVALID_ID", "comment_id must be a positive integer", "", nil)
			return
		}

		switch err := reg.Confirm(r.Context(), sess, commentKey(commentID)); {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, confirm.ErrNotPending):
			api.Conflict(w, "NO_PENDING_DELETE", "no deletion was requested for this comment", "", nil)
		case errors.Is(err, confirm.ErrNotOwner):
			api.Forbidden(w, "FORBIDDEN", "only the author may delete a comment", "")
		case errors.Is(err, store.ErrNotFoundOrForbidden):
			api.NotFound(w, "NOT_FOUND", "comment not found", "")
		default:
			api.Internal(w, "")
		}
	}
}

// CancelDeleteComment handles POST /v1/comments/{comment_id}/delete/cancel
func CancelDeleteComment(reg *confirm.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireSession(w, r); !ok {
			return
		}
		commentID, ok := idParam(r, "comment_id")
		if !ok {
			api.BadRequest(w, "INVALID_ID", "comment_id must be a positive integer", "", nil)
			return
		}
		reg.Cancel(commentKey(commentID))
		w.WriteHeader(http.StatusNoContent)
	}
}
