package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/social-platform/internal/platform/api"
	"github.com/example/social-platform/internal/social/store"
)

type usersResponse struct {
	Users []store.User `json:"users"`
}

type profileResponse struct {
	User  store.User   `json:"user"`
	Posts []store.Post `json:"posts"`
}

type setAvatarRequest struct {
	ImageURL string `json:"image_url"`
}

// SearchUsers handles GET /v1/users/search?q=
func SearchUsers(us store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.TrimSpace(r.URL.Query().Get("q"))
		if q == "" {
			api.WriteJSON(w, http.StatusOK, usersResponse{Users: []store.User{}})
			return
		}
		users, err := us.Search(r.Context(), q, 0)
		if err != nil {
			api.Internal(w, "")
			return
		}
		if users == nil {
			users = []store.User{}
		}
		api.WriteJSON(w, http.StatusOK, usersResponse{Users: users})
	}
}

// GetProfile handles GET /v1/users/{username}
//
// The profile page shows the user and their recent posts, so both come
// back in one response.
func GetProfile(us store.UserStore, ps store.PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimSpace(chi.URLParam(r, "username"))
		if username == "" {
			api.BadRequest(w, "MISSING_USERNAME", "username is required", "", nil)
			return
		}

		u, err := us.GetByUsername(r.Context(), username)
		if errors.Is(err, store.ErrNotFound) {
			api.NotFound(w, "NOT_FOUND", "user not found", "")
			return
		}
		if err != nil {
			api.Internal(w, "")
			return
		}

		posts, err := ps.ListByUser(r.Context(), u.ID, 0)
		if err != nil {
			api.Internal(w, "")
			return
		}
		if posts == nil {
			posts = []store.Post{}
		}
		api.WriteJSON(w, http.StatusOK, profileResponse{User: u, Posts: posts})
	}
}

// SetAvatar handles POST /v1/users/me/avatar
//
// The client uploads the image through the media endpoint first and then
// points its profile at the returned URL.
func SetAvatar(us store.UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}

		var req setAvatarRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}
		imageURL := strings.TrimSpace(req.ImageURL)
		if imageURL == "" {
			api.BadRequest(w, "MISSING_IMAGE_URL", "image_url is required", "", nil)
			return
		}

		if err := us.SetImageURL(r.Context(), sess.UserID, imageURL); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.NotFound(w, "NOT_FOUND", "user not found", "")
				return
			}
			api.Internal(w, "")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
