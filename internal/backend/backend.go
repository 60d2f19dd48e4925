// Package backend assembles the storage and messaging infrastructure from
// configuration.
package backend

import (
	"context"
	"fmt"

	"splitledger/internal/amqp"
	"splitledger/internal/config"
	"splitledger/internal/core"
	"splitledger/internal/log"
	"splitledger/internal/store"
	"splitledger/internal/store/memory"
	"splitledger/internal/store/sqlite"
)

// Result bundles the selected store with the optional change publisher.
// Events is nil when no AMQP broker is configured or reachable.
type Result struct {
	Store   store.Store
	Events  *amqp.Client
	Cleanup func() error
}

type Factory struct {
	logger *log.Logger
}

func NewFactory(logger *log.Logger) *Factory {
	return &Factory{logger: logger.WithComponent(log.ComponentStore)}
}

// Create builds the store named by cfg.StoreBackend, connects the change
// publisher when an AMQP URL is set, and seeds demo data when requested.
// A broker connection failure is logged and tolerated: the ledger keeps
// working without change events.
func (f *Factory) Create(ctx context.Context, cfg *config.Config) (*Result, error) {
	var st store.Store
	switch cfg.StoreBackend {
	case config.BackendMemory:
		st = memory.New()
		f.logger.Info("Initialized in-memory store")
	case config.BackendSQLite:
		var err error
		st, err = sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		f.logger.Info("Initialized SQLite store", "db_path", cfg.SQLiteDBPath)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.StoreBackend)
	}

	var events *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		events, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to connect AMQP, continuing without change events",
				log.FieldError, err)
		} else {
			f.logger.Info("Connected AMQP change publisher",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	if cfg.SeedDemoData {
		if err := seedDemoData(ctx, st, f.logger); err != nil {
			closeAll(st, events)
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	return &Result{
		Store:  st,
		Events: events,
		Cleanup: func() error {
			return closeAll(st, events)
		},
	}, nil
}

// seedDemoData inserts a small sample ledger, but only into an empty store so
// restarts of a persistent backend do not duplicate rows.
func seedDemoData(ctx context.Context, st store.Store, logger *log.Logger) error {
	existing, err := st.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("Store not empty, skipping demo seed", log.FieldCount, len(existing))
		return nil
	}

	drafts := []store.Draft{
		{Amount: core.Money{Cents: 60000}, Description: "Dinner", Payer: "Shantanu"},
		{Amount: core.Money{Cents: 45000}, Description: "Groceries", Payer: "Sanket"},
		{Amount: core.Money{Cents: 30000}, Description: "Petrol", Payer: "Om"},
		{Amount: core.Money{Cents: 50000}, Description: "Movie Tickets", Payer: "Shantanu"},
		{Amount: core.Money{Cents: 28000}, Description: "Pizza", Payer: "Sanket"},
	}
	for _, d := range drafts {
		if _, err := st.Add(ctx, d); err != nil {
			return err
		}
	}
	logger.Info("Seeded demo ledger", log.FieldCount, len(drafts))
	return nil
}

func closeAll(st store.Store, events *amqp.Client) error {
	var firstErr error
	if events != nil {
		if err := events.Close(); err != nil {
			firstErr = err
		}
	}
	if err := st.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
