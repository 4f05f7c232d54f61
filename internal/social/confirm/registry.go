package confirm

import (
	"context"
	"sync"

	"github.com/example/social-platform/internal/platform/auth"
)

// Registry tracks pending deletions across requests, keyed by resource
// (for example "post:42"). A flow is created on Request and forgotten once
// it resolves, so the map only ever holds open requests.
type Registry struct {
	mu    sync.Mutex
	flows map[string]*Flow
}

func NewRegistry() *Registry {
	return &Registry{flows: make(map[string]*Flow)}
}

// Request opens a pending deletion for key. ownerID and delete are bound on
// first request; repeat requests for the same key reuse the open flow.
func (r *Registry) Request(sess auth.Session, key, ownerID string, delete func(ctx context.Context) error) error {
	r.mu.Lock()
	f, ok := r.flows[key]
	if !ok {
		f = New(ownerID, delete)
	}
	r.mu.Unlock()

	if err := f.Request(sess); err != nil {
		return err
	}

	r.mu.Lock()
	r.flows[key] = f
	r.mu.Unlock()
	return nil
}

// Confirm resolves the pending deletion for key. ErrNotPending when nothing
// was requested; ErrNotOwner leaves the owner's request open.
func (r *Registry) Confirm(ctx context.Context, sess auth.Session, key string) error {
	r.mu.Lock()
	f, ok := r.flows[key]
	r.mu.Unlock()
	if !ok {
		return ErrNotPending
	}

	err := f.Confirm(ctx, sess)
	if err == ErrNotOwner {
		return err
	}
	r.mu.Lock()
	delete(r.flows, key)
	r.mu.Unlock()
	return err
}

// Cancel abandons the pending deletion for key, if any.
func (r *Registry) Cancel(key string) {
	r.mu.Lock()
	f, ok := r.flows[key]
	delete(r.flows, key)
	r.mu.Unlock()
	if ok {
		f.Cancel()
	}
}

// Pending reports whether a deletion request is open for key.
func (r *Registry) Pending(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flows[key]
	return ok && f.State() == StatePending
}
