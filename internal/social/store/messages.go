package store

import (
	"context"
	"time"
)

// Message is a direct message between two users.
type Message struct {
	ID         int64     `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
}

// UnreadSender is one row of the aggregated unread summary: how many unread
// messages a user has from one sender.
type UnreadSender struct {
	SenderID string `json:"sender_id"`
	Count    int    `json:"count"`
}

// MessageStore defines direct-message persistence.
type MessageStore interface {
	Create(ctx context.Context, m Message) (Message, error)
	// ListBetween returns the full conversation between two users in both
	// directions, oldest first.
	ListBetween(ctx context.Context, userA, userB string) ([]Message, error)
	// MarkRead marks every message from sender to receiver as read.
	MarkRead(ctx context.Context, senderID, receiverID string) error
	// UnreadSummary aggregates unread counts per sender for one receiver.
	UnreadSummary(ctx context.Context, receiverID string) ([]UnreadSender, error)
}
