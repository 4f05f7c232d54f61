package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/social-platform/internal/social/store"
)

func TestSearchUsers(t *testing.T) {
	us := store.NewInMemoryUserStore()
	seedUser(t, us, "alice")
	seedUser(t, us, "alicia")
	seedUser(t, us, "bob")
	handler := SearchUsers(us)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, setupReq(http.MethodGet, "/v1/users/search?q=ali", "", nil, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp usersResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Users) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(resp.Users))
	}

	// Empty query returns an empty list, not everyone.
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, setupReq(http.MethodGet, "/v1/users/search", "", nil, ""))
	resp = usersResponse{}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Users) != 0 {
		t.Fatalf("expected no matches for empty query, got %d", len(resp.Users))
	}
}

func TestGetProfile(t *testing.T) {
	us := store.NewInMemoryUserStore()
	ps := store.NewInMemoryPostStore()
	alice := seedUser(t, us, "alice")
	seedPost(t, ps, alice.ID, "her post")
	seedPost(t, ps, "someone-else", "not hers")
	handler := GetProfile(us, ps)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, setupReq(http.MethodGet, "/v1/users/alice", "",
		map[string]string{"username": "alice"}, ""))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp profileResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.User.ID != alice.ID {
		t.Fatalf("expected alice, got %+v", resp.User)
	}
	if len(resp.Posts) != 1 || resp.Posts[0].Content != "her post" {
		t.Fatalf("expected only alice's post, got %+v", resp.Posts)
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	handler := GetProfile(store.NewInMemoryUserStore(), store.NewInMemoryPostStore())
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, setupReq(http.MethodGet, "/v1/users/ghost", "",
		map[string]string{"username": "ghost"}, ""))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestSetAvatar(t *testing.T) {
	us := store.NewInMemoryUserStore()
	alice := seedUser(t, us, "alice")
	handler := SetAvatar(us)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, setupReq(http.MethodPost, "/v1/users/me/avatar",
		`{"image_url":"/v1/media/abc"}`, nil, alice.ID))
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rr.Code, rr.Body.String())
	}

	got, err := us.GetByID(context.Background(), alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ImageURL != "/v1/media/abc" {
		t.Fatalf("expected avatar set, got %q", got.ImageURL)
	}
}

func TestSetAvatar_Validation(t *testing.T) {
	us := store.NewInMemoryUserStore()
	alice := seedUser(t, us, "alice")
	handler := SetAvatar(us)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, setupReq(http.MethodPost, "/v1/users/me/avatar", `{"image_url":""}`, nil, alice.ID))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, setupReq(http.MethodPost, "/v1/users/me/avatar", `{"image_url":"/x"}`, nil, ""))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}
