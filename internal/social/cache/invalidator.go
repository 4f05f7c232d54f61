package cache

import (
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/social-platform/internal/social/counts"
	"github.com/example/social-platform/internal/social/store"
)

// Invalidator maps each mutation to the cached views it stales and drops
// them. Keys are dropped locally right away and published to NATS so other
// instances drop them too. Counts tracked by the poller are refetched ahead
// of their next tick.
//
// Invalidation is fire and forget: a failed publish is logged, never
// surfaced to the caller, and the mutation stays committed.
type Invalidator struct {
	cache  Cache
	nc     *nats.Conn
	poller *counts.Poller
	log    *zap.Logger
}

// NewInvalidator wires an Invalidator. nc and poller may be nil; a nil
// Invalidator is safe to call.
func NewInvalidator(c Cache, nc *nats.Conn, poller *counts.Poller, log *zap.Logger) *Invalidator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Invalidator{cache: c, nc: nc, poller: poller, log: log}
}

func (inv *Invalidator) drop(keys ...string) {
	if inv == nil {
		return
	}
	for _, key := range keys {
		if inv.cache != nil {
			inv.cache.Delete(key)
		}
		if inv.nc != nil {
			if err := inv.nc.Publish(InvalidateSubject, []byte(key)); err != nil {
				inv.log.Warn("cache invalidation publish failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
}

func (inv *Invalidator) refresh(keys ...counts.Key) {
	if inv == nil || inv.poller == nil {
		return
	}
	for _, k := range keys {
		inv.poller.Refresh(k)
	}
}

// CommentCreated stales the post's comment list and comment count, plus the
// parent's reply count when the new comment is a reply.
func (inv *Invalidator) CommentCreated(postID int64, parentID *int64) {
	inv.commentChanged(postID, parentID)
}

// CommentDeleted stales the same views as CommentCreated. A tombstoned
// comment still counts toward totals, but its rendered body changed.
func (inv *Invalidator) CommentDeleted(postID int64, parentID *int64) {
	inv.commentChanged(postID, parentID)
}

func (inv *Invalidator) commentChanged(postID int64, parentID *int64) {
	keys := []string{KeyComments(postID), KeyReplyCountPost(postID)}
	refreshes := []counts.Key{{Kind: store.TargetPost, ID: postID, Metric: counts.MetricReplies}}
	if parentID != nil {
		keys = append(keys, KeyReplyCountComment(*parentID))
		refreshes = append(refreshes, counts.Key{Kind: store.TargetComment, ID: *parentID, Metric: counts.MetricReplies})
	}
	inv.drop(keys...)
	inv.refresh(refreshes...)
}

// PostCreated stales the feed.
func (inv *Invalidator) PostCreated() {
	inv.drop(KeyPosts)
}

// PostDeleted stales the feed and everything hanging off the post.
func (inv *Invalidator) PostDeleted(postID int64) {
	inv.drop(
		KeyPosts,
		KeyComments(postID),
		KeyReplyCountPost(postID),
		KeyLikeCount(store.TargetPost, postID),
	)
}

// LikeToggled stales the target's like count.
func (inv *Invalidator) LikeToggled(kind store.TargetKind, targetID int64) {
	inv.drop(KeyLikeCount(kind, targetID))
	inv.refresh(counts.Key{Kind: kind, ID: targetID, Metric: counts.MetricLikes})
}

// MessageSent stales the receiver's unread summary.
func (inv *Invalidator) MessageSent(receiverID string) {
	inv.drop(KeyUnread(receiverID))
}

// MessagesRead stales the reader's unread summary.
func (inv *Invalidator) MessagesRead(readerID string) {
	inv.drop(KeyUnread(readerID))
}
