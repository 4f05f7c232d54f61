package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryPostStore is a development-only in-memory implementation.
type InMemoryPostStore struct {
	mu     sync.RWMutex
	nextID int64
	posts  map[int64]Post
}

func NewInMemoryPostStore() *InMemoryPostStore {
	return &InMemoryPostStore{posts: make(map[int64]Post)}
}

func (s *InMemoryPostStore) Create(_ context.Context, p Post) (Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	p.ID = s.nextID
	p.CreatedAt = time.Now().UTC()
	s.posts[p.ID] = p
	return p, nil
}

func (s *InMemoryPostStore) List(_ context.Context, limit int) ([]Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collectPosts(s.posts, normalizeLimit(limit), func(Post) bool { return true }), nil
}

func (s *InMemoryPostStore) ListByUser(_ context.Context, userID string, limit int) ([]Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return collectPosts(s.posts, normalizeLimit(limit), func(p Post) bool { return p.UserID == userID }), nil
}

func (s *InMemoryPostStore) Delete(_ context.Context, postID int64, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok || p.UserID != userID {
		return ErrNotFoundOrForbidden
	}
	delete(s.posts, postID)
	return nil
}

func (s *InMemoryPostStore) Get(_ context.Context, postID int64) (Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[postID]
	if !ok {
		return Post{}, ErrNotFound
	}
	return p, nil
}

func collectPosts(posts map[int64]Post, limit int, keep func(Post) bool) []Post {
	var out []Post
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
