// Package confirm guards destructive actions behind an explicit two-step
// flow: the owner requests deletion, then either confirms (the delete runs
// once) or cancels (nothing runs).
package confirm

import (
	"context"
	"errors"
	"sync"

	"github.com/example/social-platform/internal/platform/auth"
)

var (
	// ErrNotOwner rejects a request by anyone but the resource owner.
	ErrNotOwner = errors.New("confirm: requester does not own the resource")
	// ErrNotPending rejects a confirm with no pending request behind it.
	ErrNotPending = errors.New("confirm: no deletion pending")
)

// State is the flow's position: no request pending, or awaiting a decision.
type State int

const (
	StateIdle State = iota
	StatePending
)

// Flow is the confirmation state machine for one deletable resource. The
// delete function runs at most once per pending request, and only from
// Confirm. Safe for concurrent use.
type Flow struct {
	ownerID string
	delete  func(ctx context.Context) error

	mu    sync.Mutex
	state State
}

// New builds a Flow for a resource owned by ownerID. delete performs the
// actual removal when the owner confirms.
func New(ownerID string, delete func(ctx context.Context) error) *Flow {
	return &Flow{ownerID: ownerID, delete: delete}
}

// State returns the current flow state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Request opens a pending deletion. Only the owner may request; a request
// while one is already pending is a no-op. Nothing is deleted yet.
func (f *Flow) Request(sess auth.Session) error {
	if sess.UserID != f.ownerID {
		return ErrNotOwner
	}
	f.mu.Lock()
	f.state = StatePending
	f.mu.Unlock()
	return nil
}

// Cancel abandons a pending deletion. Cancelling with nothing pending is a
// no-op; the delete function is never run from here.
func (f *Flow) Cancel() {
	f.mu.Lock()
	f.state = StateIdle
	f.mu.Unlock()
}

// Confirm runs the delete for the pending request. The flow returns to
// idle whether the delete succeeds or fails, so a retry needs a fresh
// Request. Confirming with nothing pending returns ErrNotPending and runs
// nothing.
func (f *Flow) Confirm(ctx context.Context, sess auth.Session) error {
	if sess.UserID != f.ownerID {
		return ErrNotOwner
	}
	f.mu.Lock()
	if f.state != StatePending {
		f.mu.Unlock()
		return ErrNotPending
	}
	f.state = StateIdle
	f.mu.Unlock()
	return f.delete(ctx)
}
