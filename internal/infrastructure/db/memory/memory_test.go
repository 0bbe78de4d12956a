package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/admindesk/directory-system/internal/core/domain"
)

func TestStore_MissingKey(t *testing.T) {
	s := NewStore()
	if _, err := s.Get(context.Background(), "nope"); !errors.Is(err, domain.ErrSnapshotMissing) {
		t.Fatalf("expected ErrSnapshotMissing, got %v", err)
	}
}

func TestStore_SetGetDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v1" {
		t.Fatalf("Get: %q, %v", got, err)
	}

	if err := s.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, _ = s.Get(ctx, "k")
	if string(got) != "v2" {
		t.Fatalf("overwrite not visible: %q", got)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, domain.ErrSnapshotMissing) {
		t.Fatalf("expected key gone, got %v", err)
	}
	// Deleting an absent key is not an error.
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete absent key: %v", err)
	}
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	src := []byte("original")
	if err := s.Set(ctx, "k", src); err != nil {
		t.Fatalf("Set: %v", err)
	}
	src[0] = 'X'

	got, _ := s.Get(ctx, "k")
	if string(got) != "original" {
		t.Fatalf("stored value aliased the caller's slice: %q", got)
	}

	got[0] = 'Y'
	again, _ := s.Get(ctx, "k")
	if string(again) != "original" {
		t.Fatalf("returned value aliased the stored slice: %q", again)
	}
}
