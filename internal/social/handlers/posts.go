// Package handlers exposes the HTTP surface of the social feed: posts,
// comments, likes, counts, messages, users, auth and media.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/social-platform/internal/platform/analytics"
	"github.com/example/social-platform/internal/platform/api"
	"github.com/example/social-platform/internal/platform/auth"
	"github.com/example/social-platform/internal/social/cache"
	"github.com/example/social-platform/internal/social/confirm"
	"github.com/example/social-platform/internal/social/store"
)

const maxPostLen = 1000

type createPostRequest struct {
	Content  string  `json:"content"`
	ImageURL *string `json:"image_url,omitempty"`
}

type postsResponse struct {
	Posts []store.Post `json:"posts"`
}

func postKey(id int64) string { return fmt.Sprintf("post:%d", id) }

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, name)), 10, 64)
	return id, err == nil && id > 0
}

func requireSession(w http.ResponseWriter, r *http.Request) (auth.Session, bool) {
	sess, ok := auth.SessionFromContext(r.Context())
	if !ok {
		api.Unauthorized(w, "UNAUTHORIZED", "authentication required", "")
		return auth.Session{}, false
	}
	return sess, true
}

// ListPosts handles GET /v1/posts
func ListPosts(ps store.PostStore, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if l := r.URL.Query().Get("limit"); l != "" {
			if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
				limit = parsed
			}
		}

		// Only the default feed is cached; explicit limits go to the store.
		if limit == 0 && c != nil {
			if v, ok := c.Get(cache.KeyPosts); ok {
				if posts, ok := v.([]store.Post); ok {
					api.WriteJSON(w, http.StatusOK, postsResponse{Posts: posts})
					return
				}
			}
		}

		posts, err := ps.List(r.Context(), limit)
		if err != nil {
			api.Internal(w, "")
			return
		}
		if limit == 0 && c != nil {
			c.Set(cache.KeyPosts, posts)
		}
		api.WriteJSON(w, http.StatusOK, postsResponse{Posts: posts})
	}
}

// CreatePost handles POST /v1/posts
func CreatePost(ps store.PostStore, inv *cache.Invalidator, an *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}

		var req createPostRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}
		content := strings.TrimSpace(req.Content)
		if content == "" {
			api.BadRequest(w, "EMPTY_CONTENT", "content must not be empty", "", nil)
			return
		}
		if len(content) > maxPostLen {
			api.BadRequest(w, "CONTENT_TOO_LONG", fmt.Sprintf("content exceeds %d characters", maxPostLen), "", nil)
			return
		}

		created, err := ps.Create(r.Context(), store.Post{
			Content:  content,
			ImageURL: req.ImageURL,
			UserID:   sess.UserID,
		})
		if err != nil {
			api.Internal(w, "")
			return
		}

		inv.PostCreated()
		an.Publish(analytics.SubjectPostCreated, "post_created", sess.UserID, map[string]any{"post_id": created.ID})
		api.WriteJSON(w, http.StatusCreated, created)
	}
}

// RequestDeletePost handles POST /v1/posts/{post_id}/delete
//
// Deletion is a two-step flow: this opens a pending request, and the
// DELETE verb resolves it. Nothing is removed here.
func RequestDeletePost(ps store.PostStore, reg *confirm.Registry, inv *cache.Invalidator, an *analytics.Publisher) http.HandlerFunc {
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

		post, err := ps.Get(r.Context(), postID)
		if errors.Is(err, store.ErrNotFound) {
			api.NotFound(w, "NOT_FOUND", "post not found", "")
			return
		}
		if err != nil {
			api.Internal(w, "")
			return
		}

		del := func(ctx context.Context) error {
			if err := ps.Delete(ctx, postID, post.UserID); err != nil {
				return err
			}
			inv.PostDeleted(postID)
			an.Publish(analytics.SubjectPostDeleted, "post_deleted", post.UserID, map[string]any{"post_id": postID})
			return nil
		}
		if err := reg.Request(sess, postKey(postID), post.UserID, del); err != nil {
			api.Forbidden(w, "FORBIDDEN", "only the author may delete a post", "")
			return
		}
		api.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "pending"})
	}
}

// ConfirmDeletePost handles DELETE /v1/posts/{post_id}
func ConfirmDeletePost(reg *confirm.Registry) http.HandlerFunc {
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

		switch err := reg.Confirm(r.Context(), sess, postKey(postID)); {
		case err == nil:
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, confirm.ErrNotPending):
			api.Conflict(w, "NO_PENDING_DELETE", "no deletion was requested for this post", "", nil)
		case errors.Is(err, confirm.ErrNotOwner):
			api.Forbidden(w, "FORBIDDEN", "only the author may delete a post", "")
		case errors.Is(err, store.ErrNotFoundOrForbidden):
			api.NotFound(w, "NOT_FOUND", "post not found", "")
		default:
			api.Internal(w, "")
		}
	}
}

// CancelDeletePost handles POST /v1/posts/{post_id}/delete/cancel
func CancelDeletePost(reg *confirm.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireSession(w, r); !ok {
			return
		}
		postID, ok := idParam(r, "post_id")
		if !ok {
			api.BadRequest(w, "INVALID_ID", "post_id must be a positive integer", "", nil)
			return
		}
		reg.Cancel(postKey(postID))
		w.WriteHeader(http.StatusNoContent)
	}
}
