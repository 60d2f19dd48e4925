// Package store defines the expense store port. The ledger core never
// touches mutable state: it consumes consistent snapshots handed out by a
// Store implementation, and all construction-time invariants (positive
// amounts, trimmed names, two-decimal precision) are enforced here at the
// boundary.
package store

import (
	"context"
	"errors"

	"splitledger/internal/core"
)

// ErrNotFound is returned when no expense exists for the given id.
var ErrNotFound = errors.New("expense not found")

type (
	// Draft is a normalized expense awaiting identity and timestamps.
	Draft struct {
		Amount      core.Money
		Description string
		Payer       string
	}

	// Patch carries optional fields for a partial update. Nil fields are
	// left untouched.
	Patch struct {
		Amount      *core.Money
		Description *string
		Payer       *string
	}
)

// Store is the port for expense persistence. Implementations must serialize
// mutations against reads: List returns a snapshot that no concurrent write
// can partially update.
type Store interface {
	// Add assigns a monotonic id and timestamps, persists the expense and
	// returns it. Ids are never reused, even after deletes.
	Add(ctx context.Context, d Draft) (core.Expense, error)

	// List returns all expenses as an independent copy, ordered by id.
	List(ctx context.Context) ([]core.Expense, error)

	// Get returns the expense with the given id or ErrNotFound.
	Get(ctx context.Context, id int64) (core.Expense, error)

	// Update applies the non-nil fields of the patch, bumps UpdatedAt and
	// returns the result, or ErrNotFound.
	Update(ctx context.Context, id int64, p Patch) (core.Expense, error)

	// Delete removes the expense with the given id or returns ErrNotFound.
	Delete(ctx context.Context, id int64) error

	Close() error
}
