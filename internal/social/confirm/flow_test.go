package confirm

import (
	"context"
	"errors"
	"testing"

	"github.com/example/social-platform/internal/platform/auth"
)

func TestFlow_RequestByNonOwner(t *testing.T) {
	calls := 0
	f := New("user-a", func(context.Context) error { calls++; return nil })

	if err := f.Request(auth.Session{UserID: "user-b"}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if f.State() != StateIdle {
		t.Fatal("rejected request must not change state")
	}
	if calls != 0 {
		t.Fatal("delete must not run")
	}
}

func TestFlow_ConfirmRunsDeleteOnce(t *testing.T) {
	calls := 0
	f := New("user-a", func(context.Context) error { calls++; return nil })
	owner := auth.Session{UserID: "user-a"}

	if err := f.Request(owner); err != nil {
		t.Fatal(err)
	}
	if f.State() != StatePending {
		t.Fatal("expected pending state after request")
	}
	if err := f.Confirm(context.Background(), owner); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("expected delete to run once, ran %d times", calls)
	}
	if f.State() != StateIdle {
		t.Fatal("expected idle state after confirm")
	}

	// Second confirm has no pending request behind it.
	if err := f.Confirm(context.Background(), owner); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("delete ran again: %d calls", calls)
	}
}

func TestFlow_CancelNeverDeletes(t *testing.T) {
	calls := 0
	f := New("user-a", func(context.Context) error { calls++; return nil })
	owner := auth.Session{UserID: "user-a"}

	if err := f.Request(owner); err != nil {
		t.Fatal(err)
	}
	f.Cancel()
	if f.State() != StateIdle {
		t.Fatal("expected idle state after cancel")
	}
	if err := f.Confirm(context.Background(), owner); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending after cancel, got %v", err)
	}
	if calls != 0 {
		t.Fatal("delete must not run")
	}

	// Cancel is idempotent.
	f.Cancel()
	f.Cancel()
	if f.State() != StateIdle {
		t.Fatal("expected idle state")
	}
}

func TestFlow_ConfirmByNonOwner(t *testing.T) {
	calls := 0
	f := New("user-a", func(context.Context) error { calls++; return nil })

	if err := f.Request(auth.Session{UserID: "user-a"}); err != nil {
		t.Fatal(err)
	}
	if err := f.Confirm(context.Background(), auth.Session{UserID: "user-b"}); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if calls != 0 {
		t.Fatal("delete must not run")
	}
	if f.State() != StatePending {
		t.Fatal("owner's pending request must survive a stranger's confirm")
	}
}

func TestFlow_FailedDeleteReturnsToIdle(t *testing.T) {
	boom := errors.New("store down")
	f := New("user-a", func(context.Context) error { return boom })
	owner := auth.Session{UserID: "user-a"}

	if err := f.Request(owner); err != nil {
		t.Fatal(err)
	}
	if err := f.Confirm(context.Background(), owner); !errors.Is(err, boom) {
		t.Fatalf("expected delete error surfaced, got %v", err)
	}
	if f.State() != StateIdle {
		t.Fatal("expected idle state even when delete fails")
	}
	// A retry needs a fresh request.
	if err := f.Confirm(context.Background(), owner); !errors.Is(err, ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}
}

func TestFlow_RequestWhilePendingIsNoop(t *testing.T) {
	calls := 0
	f := New("user-a", func(context.Context) error { calls++; return nil })
	owner := auth.Session{UserID: "user-a"}

	if err := f.Request(owner); err != nil {
		t.Fatal(err)
	}
	if err := f.Request(owner); err != nil {
		t.Fatal(err)
	}
	if f.State() != StatePending {
		t.Fatal("expected pending state")
	}
	if err := f.Confirm(context.Background(), owner); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("expected one delete, got %d", calls)
	}
}
