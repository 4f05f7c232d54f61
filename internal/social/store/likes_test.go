package store

import (
	"context"
	"sync"
	"testing"
)

func TestLikeStore_ToggleSymmetry(t *testing.T) {
	s := NewInMemoryLikeStore()
	ctx := context.Background()

	liked, err := s.Toggle(ctx, TargetPost, 1, "user-a")
	if err != nil {
		t.Fatal(err)
	}
	if !liked {
		t.Fatal("first toggle should like")
	}
	liked, err = s.Toggle(ctx, TargetPost, 1, "user-a")
	if err != nil {
		t.Fatal(err)
	}
	if liked {
		t.Fatal("second toggle should unlike")
	}

	// An even number of toggles always lands back at zero.
	n, err := s.Count(ctx, TargetPost, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected 0 likes, got %d", n)
	}
}

func TestLikeStore_TargetsAreIndependent(t *testing.T) {
	s := NewInMemoryLikeStore()
	ctx := context.Background()

	s.Toggle(ctx, TargetPost, 1, "user-a")
	s.Toggle(ctx, TargetComment, 1, "user-a")
	s.Toggle(ctx, TargetPost, 2, "user-a")

	for _, tc := range []struct {
		kind TargetKind
		id   int64
		want int
	}{
		{TargetPost, 1, 1},
		{TargetComment, 1, 1},
		{TargetPost, 2, 1},
		{TargetComment, 2, 0},
	} {
		n, err := s.Count(ctx, tc.kind, tc.id)
		if err != nil {
			t.Fatal(err)
		}
		if n != tc.want {
			t.Errorf("%s %d: got %d, want %d", tc.kind, tc.id, n, tc.want)
		}
	}

	likes, err := s.ListForTarget(ctx, TargetPost, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(likes) != 1 || likes[0].PostID == nil || *likes[0].PostID != 1 || likes[0].CommentID != nil {
		t.Fatalf("unexpected like row %+v", likes)
	}
}

func TestLikeStore_ConcurrentTogglesNeverDuplicate(t *testing.T) {
	s := NewInMemoryLikeStore()
	ctx := context.Background()

	const toggles = 100
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Toggle(ctx, TargetPost, 1, "user-a"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	// However the toggles interleave, the row count is 0 or 1, never more.
	n, err := s.Count(ctx, TargetPost, 1)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("expected even toggle count to land at 0, got %d", n)
	}
}

func TestParseTargetKind(t *testing.T) {
	if k, err := ParseTargetKind("post"); err != nil || k != TargetPost {
		t.Fatalf("got %v %v", k, err)
	}
	if k, err := ParseTargetKind("comment"); err != nil || k != TargetComment {
		t.Fatalf("got %v %v", k, err)
	}
	if _, err := ParseTargetKind("video"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
