package media

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestBlobStore_PutGet(t *testing.T) {
	s := NewInMemoryBlobStore()
	ctx := context.Background()

	data := []byte{0x89, 'P', 'N', 'G'}
	b, err := s.Put(ctx, "user-a", "image/png", data)
	if err != nil {
		t.Fatal(err)
	}
	if b.ID == "" || b.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at assigned, got %+v", b)
	}
	if b.URL() != "/v1/media/"+b.ID {
		t.Fatalf("unexpected URL %q", b.URL())
	}

	got, err := s.Get(ctx, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ContentType != "image/png" || got.OwnerID != "user-a" {
		t.Fatalf("unexpected blob %+v", got)
	}
	if !bytes.Equal(got.Data, data) {
		t.Fatal("data round trip mismatch")
	}
}

func TestBlobStore_GetMissing(t *testing.T) {
	s := NewInMemoryBlobStore()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBlobStore_PutCopiesData(t *testing.T) {
	s := NewInMemoryBlobStore()
	data := []byte("abc")
	b, err := s.Put(context.Background(), "user-a", "image/jpeg", data)
	if err != nil {
		t.Fatal(err)
	}
	data[0] = 'x'
	got, err := s.Get(context.Background(), b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if string(got.Data) != "abc" {
		t.Fatalf("stored blob aliases caller buffer: %q", got.Data)
	}
}
