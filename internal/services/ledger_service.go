package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"splitledger/internal/core"
	"splitledger/internal/store"
)

// BalanceEntry is the balances view: absolute amount plus a status tag.
// The signed net lives on the people view instead.
type BalanceEntry struct {
	Person  string
	Balance core.Money // |net|, non-negative
	Status  string
}

// LedgerService is the read path. Every call takes a fresh snapshot from
// the store and recomputes derived views from scratch; nothing is cached.
type LedgerService struct {
	store store.Store
}

func NewLedgerService(st store.Store) *LedgerService {
	return &LedgerService{store: st}
}

// Balances returns each participant's absolute balance with its status tag,
// sorted by person name.
func (s *LedgerService) Balances(ctx context.Context) ([]BalanceEntry, error) {
	balances, err := s.reduce(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]BalanceEntry, 0, len(balances))
	for person, net := range balances {
		abs := net
		if abs < 0 {
			abs = -abs
		}
		entries = append(entries, BalanceEntry{
			Person:  person,
			Balance: core.Money{Cents: abs},
			Status:  core.Status(net),
		})
	}
	sort.Slice(entries, func(a, b int) bool {
		return entries[a].Person < entries[b].Person
	})
	return entries, nil
}

// Settlements returns the greedy settlement plan in emission order.
func (s *LedgerService) Settlements(ctx context.Context) ([]core.Settlement, error) {
	balances, err := s.reduce(ctx)
	if err != nil {
		return nil, err
	}
	return core.Match(balances), nil
}

// People returns per-participant summaries sorted by name.
func (s *LedgerService) People(ctx context.Context) ([]core.PersonSummary, error) {
	snapshot, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	balances, err := core.Reduce(snapshot)
	if err != nil {
		return nil, fmt.Errorf("reduce balances: %w", err)
	}
	s.checkInvariant(ctx, balances)
	return core.Summarize(snapshot, balances), nil
}

func (s *LedgerService) reduce(ctx context.Context) (map[string]int64, error) {
	snapshot, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	balances, err := core.Reduce(snapshot)
	if err != nil {
		return nil, fmt.Errorf("reduce balances: %w", err)
	}
	s.checkInvariant(ctx, balances)
	return balances, nil
}

// checkInvariant logs when net balances fail to cancel out. This signals a
// reducer defect, not bad user input, so the request still proceeds.
func (s *LedgerService) checkInvariant(ctx context.Context, balances map[string]int64) {
	if err := core.CheckZeroSum(balances); err != nil {
		slog.WarnContext(ctx, "Balance invariant violated", "error", err)
	}
}
