package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/social-platform/internal/platform/analytics"
	"github.com/example/social-platform/internal/platform/api"
	"github.com/example/social-platform/internal/social/cache"
	"github.com/example/social-platform/internal/social/counts"
	"github.com/example/social-platform/internal/social/store"
)

type toggleResponse struct {
	Liked bool `json:"liked"`
}

type likesResponse struct {
	Likes []store.Like `json:"likes"`
}

type countsResponse struct {
	Likes   int `json:"likes"`
	Replies int `json:"replies"`
}

func targetParams(w http.ResponseWriter, r *http.Request) (store.TargetKind, int64, bool) {
	kind, err := store.ParseTargetKind(strings.TrimSpace(chi.URLParam(r, "kind")))
	if err != nil {
		api.BadRequest(w, "INVALID_KIND", "kind must be post or comment", "", nil)
		return "", 0, false
	}
	id, ok := idParam(r, "id")
	if !ok {
		api.BadRequest(w, "INVALID_ID", "id must be a positive integer", "", nil)
		return "", 0, false
	}
	return kind, id, true
}

// ToggleLike handles POST /v1/likes/{kind}/{id}
//
// The toggle is atomic in the store; the response reports which way it
// landed for this caller.
func ToggleLike(ls store.LikeStore, inv *cache.Invalidator, an *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}
		kind, id, ok := targetParams(w, r)
		if !ok {
			return
		}

		liked, err := ls.Toggle(r.Context(), kind, id, sess.UserID)
		if err != nil {
			api.Internal(w, "")
			return
		}

		inv.LikeToggled(kind, id)
		an.Publish(analytics.SubjectLikeToggled, "like_toggled", sess.UserID, map[string]any{
			"kind":   string(kind),
			"target": id,
			"liked":  liked,
		})
		api.WriteJSON(w, http.StatusOK, toggleResponse{Liked: liked})
	}
}

// ListLikes handles GET /v1/likes/{kind}/{id}
//
// Returns the raw like rows; a signed-in caller derives its own liked
// state by scanning for its user id.
func ListLikes(ls store.LikeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, id, ok := targetParams(w, r)
		if !ok {
			return
		}
		likes, err := ls.ListForTarget(r.Context(), kind, id)
		if err != nil {
			api.Internal(w, "")
			return
		}
		api.WriteJSON(w, http.StatusOK, likesResponse{Likes: likes})
	}
}

// GetCounts handles GET /v1/counts/{kind}/{id}
//
// The first request for a target answers from the store and puts its keys
// on the poller; later requests answer from the poller's refreshed values.
func GetCounts(counter *counts.Counter, poller *counts.Poller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind, id, ok := targetParams(w, r)
		if !ok {
			return
		}

		var resp countsResponse
		for _, pair := range []struct {
			metric counts.Metric
			dst    *int
		}{
			{counts.MetricLikes, &resp.Likes},
			{counts.MetricReplies, &resp.Replies},
		} {
			key := counts.Key{Kind: kind, ID: id, Metric: pair.metric}
			if v, ok := poller.Value(key); ok {
				*pair.dst = v
				continue
			}
			v, err := counter.Fetch(r.Context(), key)
			if err != nil {
				api.Internal(w, "")
				return
			}
			*pair.dst = v
			poller.Track(context.Background(), key)
		}
		api.WriteJSON(w, http.StatusOK, resp)
	}
}
