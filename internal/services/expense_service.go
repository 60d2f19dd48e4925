package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"splitledger/internal/amqp"
	"splitledger/internal/core"
	"splitledger/internal/store"
)

// ChangePublisher broadcasts ledger change events. *amqp.Client satisfies
// it; a nil publisher disables events.
type ChangePublisher interface {
	PublishLedgerChange(ctx context.Context, id int64, change string) error
}

type (
	// ExpenseInput is the raw create payload before normalization.
	ExpenseInput struct {
		Amount      string
		Description string
		Payer       string
	}

	// ExpenseUpdate is the raw partial-update payload. Nil fields are left
	// untouched.
	ExpenseUpdate struct {
		Amount      *string
		Description *string
		Payer       *string
	}
)

// ExpenseService is the write path: it normalizes raw input into validated
// drafts, persists them and then best-effort publishes a change event.
type ExpenseService struct {
	store     store.Store
	publisher ChangePublisher
}

func NewExpenseService(st store.Store, publisher ChangePublisher) *ExpenseService {
	return &ExpenseService{store: st, publisher: publisher}
}

// Create parses and normalizes the input, stores the expense and announces
// the change. A publish failure is logged, never surfaced: the expense is
// already saved.
func (s *ExpenseService) Create(ctx context.Context, in ExpenseInput) (core.Expense, error) {
	amount, err := core.ParseAmount(in.Amount)
	if err != nil {
		return core.Expense{}, err
	}
	e, err := s.store.Add(ctx, store.Draft{
		Amount:      amount,
		Description: strings.TrimSpace(in.Description),
		Payer:       core.NormalizePayer(in.Payer),
	})
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	s.publish(ctx, e.ID, amqp.ChangeCreated)
	return e, nil
}

// Update applies the provided fields to an existing expense.
func (s *ExpenseService) Update(ctx context.Context, id int64, in ExpenseUpdate) (core.Expense, error) {
	var patch store.Patch
	if in.Amount != nil {
		amount, err := core.ParseAmount(*in.Amount)
		if err != nil {
			return core.Expense{}, err
		}
		patch.Amount = &amount
	}
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		patch.Description = &desc
	}
	if in.Payer != nil {
		payer := core.NormalizePayer(*in.Payer)
		patch.Payer = &payer
	}

	e, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return core.Expense{}, err
	}

	s.publish(ctx, id, amqp.ChangeUpdated)
	return e, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, amqp.ChangeDeleted)
	return nil
}

// List returns the current expense snapshot.
func (s *ExpenseService) List(ctx context.Context) ([]core.Expense, error) {
	return s.store.List(ctx)
}

func (s *ExpenseService) publish(ctx context.Context, id int64, change string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerChange(ctx, id, change); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger change",
			"id", id, "change", change, "error", err)
	}
}

// Close releases the underlying store.
func (s *ExpenseService) Close() error {
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			return fmt.Errorf("close store: %w", err)
		}
	}
	return nil
}
