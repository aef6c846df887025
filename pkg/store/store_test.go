package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sitegrid/sitegrid/pkg/diagram"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	doc := diagram.Document{Nodes: []diagram.Node{{ID: "home"}}}
	rec := &Record{ID: "d1", Name: "marketing site", Document: doc}

	if err := s.Put(ctx, rec); err != nil {
		t.Fatalf("put: %v", err)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("timestamps not set on put")
	}

	got, err := s.Get(ctx, "d1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "marketing site" {
		t.Errorf("name = %q", got.Name)
	}
	if len(got.Document.Nodes) != 1 || got.Document.Nodes[0].ID != "home" {
		t.Errorf("document = %+v", got.Document)
	}
}

func TestMemoryStore_NotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_UpdatePreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	rec := &Record{ID: "d1"}
	if err := s.Put(ctx, rec); err != nil {
		t.Fatal(err)
	}
	created := rec.CreatedAt

	time.Sleep(time.Millisecond)
	update := &Record{ID: "d1", Name: "renamed"}
	if err := s.Put(ctx, update); err != nil {
		t.Fatal(err)
	}

	if !update.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt changed on update: %v vs %v", update.CreatedAt, created)
	}
	if !update.UpdatedAt.After(created) {
		t.Errorf("UpdatedAt not advanced: %v", update.UpdatedAt)
	}
}

func TestMemoryStore_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, id := range []string{"b", "a", "c"} {
		if err := s.Put(ctx, &Record{ID: id}); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.Delete(ctx, "b"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// Deleting a missing ID is fine.
	if err := s.Delete(ctx, "b"); err != nil {
		t.Errorf("second delete: %v", err)
	}

	ids, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "c" {
		t.Errorf("ids = %v, want [a c]", ids)
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, &Record{ID: "d1", Name: "original"}); err != nil {
		t.Fatal(err)
	}

	first, _ := s.Get(ctx, "d1")
	first.Name = "mutated"

	second, _ := s.Get(ctx, "d1")
	if second.Name != "original" {
		t.Error("mutation through returned record leaked into the store")
	}
}
