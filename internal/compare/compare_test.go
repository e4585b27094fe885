// Materium - Construction Material Recommendation Service
// Copyright 2026 Quarry Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/quarrylabs/materium

package compare

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/quarrylabs/materium/internal/catalog"
)

func setupTestStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("opening badger: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("closing badger: %v", err)
		}
	})

	return NewStore(db, catalog.New(), Config{TTL: ttl})
}

func TestAddAndList(t *testing.T) {
	s := setupTestStore(t, time.Hour)
	ctx := context.Background()

	for _, id := range []int{1, 5, 7} {
		if _, err := s.Add(ctx, 1, id); err != nil {
			t.Fatalf("Add(%d): %v", id, err)
		}
	}

	ids, err := s.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !reflect.DeepEqual(ids, []int{1, 5, 7}) {
		t.Errorf("list = %v, want insertion order [1 5 7]", ids)
	}
}

func TestAdd_Duplicate(t *testing.T) {
	s := setupTestStore(t, time.Hour)
	ctx := context.Background()

	if _, err := s.Add(ctx, 1, 3); err != nil {
		t.Fatalf("Add: %v", err)
	}
	ids, err := s.Add(ctx, 1, 3)
	if err != nil {
		t.Fatalf("Add duplicate: %v", err)
	}
	if len(ids) != 1 {
		t.Errorf("duplicate add grew the list: %v", ids)
	}
}

func TestAdd_ListFull(t *testing.T) {
	s := setupTestStore(t, time.Hour)
	ctx := context.Background()

	for _, id := range []int{1, 2, 3, 4, 5} {
		if _, err := s.Add(ctx, 1, id); err != nil {
			t.Fatalf("Add(%d): %v", id, err)
		}
	}
	if _, err := s.Add(ctx, 1, 6); !errors.Is(err, ErrListFull) {
		t.Errorf("expected ErrListFull, got %v", err)
	}

	// Re-adding a present material still works at capacity.
	if _, err := s.Add(ctx, 1, 3); err != nil {
		t.Errorf("re-add at capacity: %v", err)
	}
}

func TestAdd_UnknownMaterial(t *testing.T) {
	s := setupTestStore(t, time.Hour)

	if _, err := s.Add(context.Background(), 1, 999); !errors.Is(err, ErrUnknownMaterial) {
		t.Errorf("expected ErrUnknownMaterial, got %v", err)
	}
}

func TestRemove(t *testing.T) {
	s := setupTestStore(t, time.Hour)
	ctx := context.Background()

	for _, id := range []int{1, 2, 3} {
		if _, err := s.Add(ctx, 1, id); err != nil {
			t.Fatalf("Add(%d): %v", id, err)
		}
	}

	ids, err := s.Remove(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !reflect.DeepEqual(ids, []int{1, 3}) {
		t.Errorf("list after remove = %v", ids)
	}

	if _, err := s.Remove(ctx, 1, 2); !errors.Is(err, ErrNotInList) {
		t.Errorf("expected ErrNotInList, got %v", err)
	}
}

func TestClear(t *testing.T) {
	s := setupTestStore(t, time.Hour)
	ctx := context.Background()

	if _, err := s.Add(ctx, 1, 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Clear(ctx, 1); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	ids, err := s.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("list after clear = %v", ids)
	}

	// Clearing an empty list is fine.
	if err := s.Clear(ctx, 1); err != nil {
		t.Errorf("Clear (empty): %v", err)
	}
}

func TestListsAreScopedByUser(t *testing.T) {
	s := setupTestStore(t, time.Hour)
	ctx := context.Background()

	if _, err := s.Add(ctx, 1, 1); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := s.Add(ctx, 2, 9); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ids1, err := s.List(ctx, 1)
	if err != nil {
		t.Fatalf("List(1): %v", err)
	}
	ids2, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List(2): %v", err)
	}
	if !reflect.DeepEqual(ids1, []int{1}) || !reflect.DeepEqual(ids2, []int{9}) {
		t.Errorf("lists leaked between users: %v, %v", ids1, ids2)
	}
}
