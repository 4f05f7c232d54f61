package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/example/social-platform/internal/platform/analytics"
	"github.com/example/social-platform/internal/platform/api"
	"github.com/example/social-platform/internal/social/cache"
	"github.com/example/social-platform/internal/social/store"
)

const maxMessageLen = 300

type sendMessageRequest struct {
	Content string `json:"content"`
}

type conversationResponse struct {
	Messages []store.Message `json:"messages"`
}

type unreadResponse struct {
	Senders []store.UnreadSender `json:"senders"`
	Total   int                  `json:"total"`
}

func otherUserParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := strings.TrimSpace(chi.URLParam(r, "user_id"))
	if id == "" {
		api.BadRequest(w, "MISSING_ID", "user_id is required", "", nil)
		return "", false
	}
	return id, true
}

// GetConversation handles GET /v1/messages/{user_id}
func GetConversation(ms store.MessageStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}
		other, ok := otherUserParam(w, r)
		if !ok {
			return
		}

		msgs, err := ms.ListBetween(r.Context(), sess.UserID, other)
		if err != nil {
			api.Internal(w, "")
			return
		}
		if msgs == nil {
			msgs = []store.Message{}
		}
		api.WriteJSON(w, http.StatusOK, conversationResponse{Messages: msgs})
	}
}

// SendMessage handles POST /v1/messages/{user_id}
func SendMessage(ms store.MessageStore, us store.UserStore, inv *cache.Invalidator, an *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}
		other, ok := otherUserParam(w, r)
		if !ok {
			return
		}
		if other == sess.UserID {
			api.BadRequest(w, "SELF_MESSAGE", "cannot message yourself", "", nil)
			return
		}

		var req sendMessageRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}
		content := strings.TrimSpace(req.Content)
		if content == "" {
			api.BadRequest(w, "EMPTY_CONTENT", "content must not be empty", "", nil)
			return
		}
		if len(content) > maxMessageLen {
			api.BadRequest(w, "CONTENT_TOO_LONG", fmt.Sprintf("content exceeds %d characters", maxMessageLen), "", nil)
			return
		}

		if _, err := us.GetByID(r.Context(), other); err != nil {
			api.NotFound(w, "NOT_FOUND", "recipient not found", "")
			return
		}

		created, err := ms.Create(r.Context(), store.Message{
			SenderID:   sess.UserID,
			ReceiverID: other,
			Content:    content,
		})
		if err != nil {
			api.Internal(w, "")
			return
		}

		inv.MessageSent(other)
		an.Publish(analytics.SubjectMessageSent, "message_sent", sess.UserID, map[string]any{"receiver_id": other})
		api.WriteJSON(w, http.StatusCreated, created)
	}
}

// MarkRead handles POST /v1/messages/{user_id}/read
//
// Marks everything the other user sent to the caller as read.
func MarkRead(ms store.MessageStore, inv *cache.Invalidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}
		other, ok := otherUserParam(w, r)
		if !ok {
			return
		}

		if err := ms.MarkRead(r.Context(), other, sess.UserID); err != nil {
			api.Internal(w, "")
			return
		}
		inv.MessagesRead(sess.UserID)
		w.WriteHeader(http.StatusNoContent)
	}
}

// GetUnreadSummary handles GET /v1/messages/unread
func GetUnreadSummary(ms store.MessageStore, c cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(w, r)
		if !ok {
			return
		}

		key := cache.KeyUnread(sess.UserID)
		if c != nil {
			if v, ok := c.Get(key); ok {
				if resp, ok := v.(unreadResponse); ok {
					api.WriteJSON(w, http.StatusOK, resp)
					return
				}
			}
		}

		senders, err := ms.UnreadSummary(r.Context(), sess.UserID)
		if err != nil {
			api.Internal(w, "")
			return
		}
		if senders == nil {
			senders = []store.UnreadSender{}
		}
		total := 0
		for _, s := range senders {
			total += s.Count
		}
		resp := unreadResponse{Senders: senders, Total: total}
		if c != nil {
			c.Set(key, resp)
		}
		api.WriteJSON(w, http.StatusOK, resp)
	}
}
