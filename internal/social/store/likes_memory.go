package store

import (
	"context"
	"sort"
	"sync"
)

type likeKey struct {
	kind   TargetKind
	target int64
	user   string
}

// InMemoryLikeStore is a development-only in-memory implementation. The
// single mutex gives it the same at-most-one-row guarantee the Postgres
// unique indexes provide.
type InMemoryLikeStore struct {
	mu     sync.Mutex
	nextID int64
	likes  map[likeKey]Like
}

func NewInMemoryLikeStore() *InMemoryLikeStore {
	return &InMemoryLikeStore{likes: make(map[likeKey]Like)}
}

func (s *InMemoryLikeStore) Toggle(_ context.Context, kind TargetKind, targetID int64, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := likeKey{kind: kind, target: targetID, user: userID}
	if _, ok := s.likes[k]; ok {
		delete(s.likes, k)
		return false, nil
	}

	s.nextID++
	l := Like{ID: s.nextID, UserID: userID}
	if kind == TargetComment {
		l.CommentID = &targetID
	} else {
		l.PostID = &targetID
	}
	s.likes[k] = l
	return true, nil
}

func (s *InMemoryLikeStore) ListForTarget(_ context.Context, kind TargetKind, targetID int64) ([]Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Like
	for k, l := range s.likes {
		if k.kind == kind && k.target == targetID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *InMemoryLikeStore) Count(ctx context.Context, kind TargetKind, targetID int64) (int, error) {
	likes, err := s.ListForTarget(ctx, kind, targetID)
	if err != nil {
		return 0, err
	}
	return len(likes), nil
}
