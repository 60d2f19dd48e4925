package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"splitledger/internal/core"
	"splitledger/internal/store"
)

func draft(cents int64, desc, payer string) store.Draft {
	return store.Draft{Amount: core.Money{Cents: cents}, Description: desc, Payer: payer}
}

func TestAddAssignsMonotonicIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.Add(ctx, draft(60000, "Dinner", "Shantanu"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := s.Add(ctx, draft(45000, "Groceries", "Sanket"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1,2 got %d,%d", first.ID, second.ID)
	}
	if first.CreatedAt.IsZero() || first.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not assigned: %+v", first)
	}

	// Deleting must not free the id for reuse.
	if err := s.Delete(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	third, err := s.Add(ctx, draft(30000, "Petrol", "Om"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third.ID != 3 {
		t.Fatalf("id reused after delete: got %d", third.ID)
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.Add(ctx, draft(0, "Dinner", "Shantanu")); err == nil {
		t.Fatal("expected error for zero amount")
	}
	if _, err := s.Add(ctx, draft(100, "  ", "Shantanu")); err == nil {
		t.Fatal("expected error for blank description")
	}
	items, _ := s.List(ctx)
	if len(items) != 0 {
		t.Fatalf("rejected drafts must not be stored, got %v", items)
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	if _, err := s.Add(ctx, draft(100, "Dinner", "Alice")); err != nil {
		t.Fatalf("add: %v", err)
	}
	snap, _ := s.List(ctx)
	snap[0].Description = "mutated"
	again, _ := s.List(ctx)
	if again[0].Description != "Dinner" {
		t.Fatal("List must return an independent copy")
	}
}

func TestUpdate(t *testing.T) {
	s := New()
	ctx := context.Background()
	e, err := s.Add(ctx, draft(100, "Dinner", "Alice"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	amt := core.Money{Cents: 250}
	updated, err := s.Update(ctx, e.ID, store.Patch{Amount: &amt})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount.Cents != 250 || updated.Description != "Dinner" {
		t.Fatalf("partial update wrong: %+v", updated)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatalf("UpdatedAt not bumped: %+v", updated)
	}

	// Invalid patches leave the stored value untouched.
	bad := core.Money{Cents: -5}
	if _, err := s.Update(ctx, e.ID, store.Patch{Amount: &bad}); err == nil {
		t.Fatal("expected error for negative amount")
	}
	current, _ := s.Get(ctx, e.ID)
	if current.Amount.Cents != 250 {
		t.Fatalf("failed update mutated stored expense: %+v", current)
	}

	if _, err := s.Update(ctx, 999, store.Patch{Amount: &amt}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	s := New()
	if err := s.Delete(context.Background(), 42); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.Add(ctx, draft(100, "Dinner", "Alice"))
		}()
		go func() {
			defer wg.Done()
			snap, _ := s.List(ctx)
			// A snapshot is internally consistent: ids strictly increase.
			for j := 1; j < len(snap); j++ {
				if snap[j].ID <= snap[j-1].ID {
					t.Errorf("snapshot out of order: %d after %d", snap[j].ID, snap[j-1].ID)
				}
			}
		}()
	}
	wg.Wait()

	snap, _ := s.List(ctx)
	if len(snap) != 20 {
		t.Fatalf("expected 20 expenses, got %d", len(snap))
	}
}
