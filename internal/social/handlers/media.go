package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/social-platform/internal/platform/api"
	"github.com/example/social-platform/internal/social/media"
)

type uploadResponse struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
}

// UploadMedia handles POST /v1/media
//
// The body is the raw image; Content-Type names its format. The returned
// URL goes into a post or profile, which is a separate, non-transactional
// step: a failed follow-up write leaves an orphaned blob behind, and that
// is accepted.
func UploadMedia(bs media.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}

		ct := strings.TrimSpace(r.Header.Get("Content-Type"))
		if !strings.HasPrefix(ct, "image/") {
			api.BadRequest(w, "UNSUPPORTED_TYPE", "only image uploads are accepted", "", nil)
			return
		}

		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, media.MaxBlobSize))
		if err != nil {
			api.BadRequest(w, "BODY_TOO_LARGE", "image exceeds the upload limit", "", nil)
			return
		}
		if len(data) == 0 {
			api.BadRequest(w, "EMPTY_BODY", "image body must not be empty", "", nil)
			return
		}

		b, err := bs.Put(r.Context(), sess.UserID, ct, data)
		if err != nil {
			api.Internal(w, "")
			return
		}
		api.WriteJSON(w, http.StatusCreated, uploadResponse{ID: b.ID, URL: b.URL(), ContentType: b.ContentType})
	}
}

// ServeMedia handles GET /v1/media/{id}
func ServeMedia(bs media.BlobStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			api.BadRequest(w, "MISSING_ID", "id is required", "", nil)
			return
		}

		b, err := bs.Get(r.Context(), id)
		if errors.Is(err, media.ErrNotFound) {
			api.NotFound(w, "NOT_FOUND", "media not found", "")
			return
		}
		if err != nil {
			api.Internal(w, "")
			return
		}

		w.Header().Set("Content-Type", b.ContentType)
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b.Data)
	}
}
