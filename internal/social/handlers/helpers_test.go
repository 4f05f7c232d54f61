package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/example/social-platform/internal/platform/auth"
	"github.com/example/social-platform/internal/social/store"
)

// setupReq builds a request with chi URL params and optional user_id in context.
func setupReq(method, url string, body string, params map[string]string, userID string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, bytes.NewBufferString(body))
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID != "" {
		ctx = auth.WithUserID(ctx, userID)
	}
	return req.WithContext(ctx)
}

func seedPost(t *testing.T, ps store.PostStore, userID, content string) store.Post {
	t.Helper()
	p, err := ps.Create(context.Background(), store.Post{Content: content, UserID: userID})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func seedComment(t *testing.T, cs store.CommentStore, postID int64, parentID *int64, userID string) store.Comment {
	t.Helper()
	c, err := cs.Create(context.Background(), store.Comment{PostID: postID, ParentID: parentID, Content: "a comment", UserID: userID})
	if err != nil {
		t.Fatal(err)
	}
	return c
}
