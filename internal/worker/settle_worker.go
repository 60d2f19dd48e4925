// Package worker recomputes the settlement plan whenever the ledger changes
// and mirrors the result to an external snapshot writer.
package worker

import (
	"context"
	"fmt"

	"splitledger/internal/amqp"
	"splitledger/internal/core"
	"splitledger/internal/log"
	"splitledger/internal/sheets"
	"splitledger/internal/store"
)

type SettleWorker struct {
	store  store.Store
	mirror sheets.SnapshotWriter
	logger *log.Logger
}

func NewSettleWorker(st store.Store, mirror sheets.SnapshotWriter, logger *log.Logger) *SettleWorker {
	return &SettleWorker{
		store:  st,
		mirror: mirror,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleLedgerChange processes a single ledger change message. The message
// only signals that something changed; the worker re-reads the full ledger so
// that out-of-order or coalesced deliveries still converge on current state.
func (w *SettleWorker) HandleLedgerChange(ctx context.Context, msg *amqp.LedgerChangedMessage) error {
	w.logger.InfoContext(ctx, "Processing ledger change",
		"id", msg.ID,
		"change", msg.Change)

	expenses, err := w.store.List(ctx)
	if err != nil {
		return fmt.Errorf("list expenses: %w", err)
	}

	balances, err := core.Reduce(expenses)
	if err != nil {
		return fmt.Errorf("reduce balances: %w", err)
	}
	if err := core.CheckZeroSum(balances); err != nil {
		w.logger.WarnContext(ctx, "Balance invariant violated", log.FieldError, err)
	}
	settlements := core.Match(balances)

	w.logger.InfoContext(ctx, "Settlement plan recomputed",
		"expenses", len(expenses),
		"people", len(balances),
		"transactions", len(settlements))

	if w.mirror == nil {
		return nil
	}
	if err := w.mirror.WriteSnapshot(ctx, expenses, settlements); err != nil {
		return fmt.Errorf("mirror snapshot: %w", err)
	}
	return nil
}

// Resync recomputes and mirrors the ledger unconditionally. Called at worker
// startup to recover from messages missed while the worker was down.
func (w *SettleWorker) Resync(ctx context.Context) error {
	w.logger.InfoContext(ctx, "Running startup resync")
	return w.HandleLedgerChange(ctx, &amqp.LedgerChangedMessage{Change: "resync"})
}
