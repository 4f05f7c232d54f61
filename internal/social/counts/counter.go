// Package counts serves engagement numbers (likes, replies) and keeps them
// fresh by polling the store on an interval. Counts are always exact store
// aggregates, never client-side increments, so concurrent writers converge
// on the next fetch.
package counts

import (
	"context"
	"fmt"

	"github.com/example/social-platform/internal/social/store"
)

// Metric names which engagement number is being counted.
type Metric string

const (
	MetricLikes   Metric = "likes"
	MetricReplies Metric = "replies"
)

// Key identifies one counted value: a metric on a target.
type Key struct {
	Kind   store.TargetKind
	ID     int64
	Metric Metric
}

func (k Key) String() string {
	return fmt.Sprintf("%s:%s:%d", k.Metric, k.Kind, k.ID)
}

// Counter fetches exact counts from the stores.
type Counter struct {
	likes    store.LikeStore
	comments store.CommentStore
}

func NewCounter(likes store.LikeStore, comments store.CommentStore) *Counter {
	return &Counter{likes: likes, comments: comments}
}

// Fetch returns the current count for a key straight from the store.
func (c *Counter) Fetch(ctx context.Context, key Key) (int, error) {
	switch key.Metric {
	case MetricLikes:
		return c.likes.Count(ctx, key.Kind, key.ID)
	case MetricReplies:
		switch key.Kind {
		case store.TargetPost:
			return c.comments.CountByPost(ctx, key.ID)
		case store.TargetComment:
			return c.comments.CountReplies(ctx, key.ID)
		}
	}
	return 0, fmt.Errorf("counts: unsupported key %s", key)
}
