package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memUser struct {
	User
	passwordHash string
}

// InMemoryUserStore is a development-only in-memory implementation.
type InMemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]memUser // id -> user
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[string]memUser)}
}

func (s *InMemoryUserStore) Create(_ context.Context, p CreateUserParams) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, p.Username) || strings.EqualFold(u.Email, p.Email) {
			return User{}, ErrConflict
		}
	}

	u := memUser{
		User: User{
			ID:        uuid.NewString(),
			CreatedAt: time.Now().UTC(),
			Username:  p.Username,
			Email:     p.Email,
			ImageURL:  p.ImageURL,
		},
		passwordHash: p.PasswordHash,
	}
	s.users[u.ID] = u
	return u.User, nil
}

func (s *InMemoryUserStore) GetByID(_ context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u.User, nil
}

func (s *InMemoryUserStore) GetByUsername(_ context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u.User, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *InMemoryUserStore) FindByLogin(_ context.Context, login string) (User, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	login = strings.TrimSpace(login)
	for _, u := range s.users {
		if strings.EqualFold(u.Email, login) || strings.EqualFold(u.Username, login) {
			return u.User, u.passwordHash, nil
		}
	}
	return User{}, "", ErrNotFound
}

func (s *InMemoryUserStore) Search(_ context.Context, query string, limit int) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return []User{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 5
	}

	var out []User
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Username), query) {
			out = append(out, u.User)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryUserStore) SetImageURL(_ context.Context, userID, imageURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.ImageURL = imageURL
	s.users[userID] = u
	return nil
}
