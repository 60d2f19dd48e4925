package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"splitledger/internal/amqp"
	"splitledger/internal/backend"
	"splitledger/internal/config"
	"splitledger/internal/log"
	"splitledger/internal/sheets"
	gsheet "splitledger/internal/sheets/google"
	"splitledger/internal/worker"
)

// resyncInterval bounds how stale the mirror can get when change messages
// are lost.
const resyncInterval = 15 * time.Minute

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting settle-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the settle worker")
		os.Exit(1)
	}

	res, err := backend.NewFactory(logger).Create(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", log.FieldError, err, "backend", cfg.StoreBackend)
		os.Exit(1)
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()
	if res.Events == nil {
		logger.Error("AMQP connection failed, cannot consume ledger changes")
		os.Exit(1)
	}

	// Mirror to Google Sheets when configured; otherwise settlements are only
	// recomputed and logged.
	var mirror sheets.SnapshotWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.New(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		mirror = client
		logger.Info("Google Sheets mirror enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets mirror disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	settleWorker := worker.NewSettleWorker(res.Store, mirror, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := settleWorker.Resync(ctx); err != nil {
		logger.Error("Startup resync failed", log.FieldError, err)
		// Keep running: the next change message or periodic resync retries.
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return res.Events.ConsumeLedgerChanges(ctx, func(msg *amqp.LedgerChangedMessage) error {
			return settleWorker.HandleLedgerChange(ctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(resyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := settleWorker.Resync(ctx); err != nil {
					logger.Error("Periodic resync failed", log.FieldError, err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
