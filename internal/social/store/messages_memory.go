package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryMessageStore is a development-only in-memory implementation.
type InMemoryMessageStore struct {
	mu       sync.RWMutex
	nextID   int64
	messages map[int64]Message
}

func NewInMemoryMessageStore() *InMemoryMessageStore {
	return &InMemoryMessageStore{messages: make(map[int64]Message)}
}

func (s *InMemoryMessageStore) Create(_ context.Context, m Message) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	m.ID = s.nextID
	m.CreatedAt = time.Now().UTC()
	m.Read = false
	s.messages[m.ID] = m
	return m, nil
}

func (s *InMemoryMessageStore) ListBetween(_ context.Context, userA, userB string) ([]Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Message
	for _, m := range s.messages {
		if (m.SenderID == userA && m.ReceiverID == userB) ||
			(m.SenderID == userB && m.ReceiverID == userA) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *InMemoryMessageStore) MarkRead(_ context.Context, senderID, receiverID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, m := range s.messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID && !m.Read {
			m.Read = true
			s.messages[id] = m
		}
	}
	return nil
}

func (s *InMemoryMessageStore) UnreadSummary(_ context.Context, receiverID string) ([]UnreadSender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, m := range s.messages {
		if m.ReceiverID == receiverID && !m.Read {
			counts[m.SenderID]++
		}
	}

	out := make([]UnreadSender, 0, len(counts))
	for sender, n := range counts {
		out = append(out, UnreadSender{SenderID: sender, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SenderID < out[j].SenderID })
	return out, nil
}
