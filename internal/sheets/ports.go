package sheets

import (
	"context"

	"splitledger/internal/core"
)

// Ports for outbound mirror adapters.
type SnapshotWriter interface {
	// WriteSnapshot replaces the mirrored ledger with the given state.
	WriteSnapshot(ctx context.Context, expenses []core.Expense, settlements []core.Settlement) error
}
