package memory

import (
	"context"
	"sync"

	"splitledger/internal/core"
)

// Store is an in-memory SnapshotWriter used in tests and when no spreadsheet
// is configured.
type Store struct {
	mu          sync.Mutex
	expenses    []core.Expense
	settlements []core.Settlement
	writes      int
}

func New() *Store {
	return &Store{}
}

func (s *Store) WriteSnapshot(_ context.Context, expenses []core.Expense, settlements []core.Settlement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append([]core.Expense(nil), expenses...)
	s.settlements = append([]core.Settlement(nil), settlements...)
	s.writes++
	return nil
}

// Snapshot returns the last written state and the total number of writes.
func (s *Store) Snapshot() ([]core.Expense, []core.Settlement, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.expenses...),
		append([]core.Settlement(nil), s.settlements...),
		s.writes
}
