package store

import (
	"context"
	"errors"
	"testing"
)

func mustCreateUser(t *testing.T, s UserStore, username, email string) User {
	t.Helper()
	u, err := s.Create(context.Background(), CreateUserParams{
		Username:     username,
		Email:        email,
		PasswordHash: "hash-" + username,
	})
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func TestUserStore_CreateAndConflicts(t *testing.T) {
	s := NewInMemoryUserStore()
	ctx := context.Background()

	u := mustCreateUser(t, s, "alice", "alice@example.com")
	if u.ID == "" || u.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at assigned, got %+v", u)
	}

	if _, err := s.Create(ctx, CreateUserParams{Username: "alice", Email: "other@example.com", PasswordHash: "x"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on username, got %v", err)
	}
	if _, err := s.Create(ctx, CreateUserParams{Username: "other", Email: "alice@example.com", PasswordHash: "x"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on email, got %v", err)
	}
}

func TestUserStore_FindByLogin(t *testing.T) {
	s := NewInMemoryUserStore()
	mustCreateUser(t, s, "alice", "alice@example.com")
	ctx := context.Background()

	for _, login := range []string{"alice", "ALICE", "alice@example.com", "Alice@Example.com"} {
		u, hash, err := s.FindByLogin(ctx, login)
		if err != nil {
			t.Fatalf("login %q: %v", login, err)
		}
		if u.Username != "alice" || hash != "hash-alice" {
			t.Fatalf("login %q: got %+v %q", login, u, hash)
		}
	}

	if _, _, err := s.FindByLogin(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserStore_Lookups(t *testing.T) {
	s := NewInMemoryUserStore()
	alice := mustCreateUser(t, s, "alice", "alice@example.com")
	ctx := context.Background()

	byID, err := s.GetByID(ctx, alice.ID)
	if err != nil || byID.Username != "alice" {
		t.Fatalf("GetByID: %+v %v", byID, err)
	}
	byName, err := s.GetByUsername(ctx, "alice")
	if err != nil || byName.ID != alice.ID {
		t.Fatalf("GetByUsername: %+v %v", byName, err)
	}
	if _, err := s.GetByUsername(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserStore_Search(t *testing.T) {
	s := NewInMemoryUserStore()
	mustCreateUser(t, s, "alice", "alice@example.com")
	mustCreateUser(t, s, "Alicia", "alicia@example.com")
	mustCreateUser(t, s, "bob", "bob@example.com")
	ctx := context.Background()

	got, err := s.Search(ctx, "ali", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected case-insensitive substring match for 2 users, got %+v", got)
	}

	one, err := s.Search(ctx, "ali", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(one) != 1 {
		t.Fatalf("expected limit respected, got %d", len(one))
	}
}

func TestUserStore_SetImageURL(t *testing.T) {
	s := NewInMemoryUserStore()
	alice := mustCreateUser(t, s, "alice", "alice@example.com")
	ctx := context.Background()

	if err := s.SetImageURL(ctx, alice.ID, "/v1/media/abc"); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetByID(ctx, alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ImageURL != "/v1/media/abc" {
		t.Fatalf("expected avatar stored, got %q", got.ImageURL)
	}

	if err := s.SetImageURL(ctx, "ghost", "/x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
