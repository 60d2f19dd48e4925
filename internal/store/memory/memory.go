// Package memory implements the expense store as a mutex-guarded in-memory
// list. It is the default backend: the ledger is a transient snapshot
// recomputed from scratch on every query, so durability is optional.
package memory

import (
	"context"
	"sync"
	"time"

	"splitledger/internal/core"
	"splitledger/internal/store"
)

type Store struct {
	mu     sync.Mutex
	items  []core.Expense
	nextID int64
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{nextID: 1}
}

// Add validates and appends the expense under the lock, assigning the next
// monotonic id. Ids are never reused.
func (s *Store) Add(_ context.Context, d store.Draft) (core.Expense, error) {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()

	e := core.Expense{
		ID:          s.nextID,
		Amount:      d.Amount,
		Description: d.Description,
		Payer:       d.Payer,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	s.items = append(s.items, e)
	s.nextID++
	return e, nil
}

// List returns an independent copy so callers can hand the snapshot to the
// ledger core without observing concurrent mutations.
func (s *Store) List(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *Store) Get(_ context.Context, id int64) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, store.ErrNotFound
}

func (s *Store) Update(_ context.Context, id int64, p store.Patch) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID != id {
			continue
		}
		updated := e
		if p.Amount != nil {
			updated.Amount = *p.Amount
		}
		if p.Description != nil {
			updated.Description = *p.Description
		}
		if p.Payer != nil {
			updated.Payer = *p.Payer
		}
		updated.UpdatedAt = time.Now().UTC()
		if err := updated.Validate(); err != nil {
			return core.Expense{}, err
		}
		s.items[i] = updated
		return updated, nil
	}
	return core.Expense{}, store.ErrNotFound
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.items {
		if e.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) Close() error { return nil }
