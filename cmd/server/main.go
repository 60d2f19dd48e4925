package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"splitledger/internal/backend"
	"splitledger/internal/config"
	apphttp "splitledger/internal/http"
	"splitledger/internal/log"
	"splitledger/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
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

	var publisher services.ChangePublisher
	if res.Events != nil {
		publisher = res.Events
	}
	expenseService := services.NewExpenseService(res.Store, publisher)
	ledgerService := services.NewLedgerService(res.Store)

	srv := apphttp.NewServer(":"+cfg.Port, expenseService, ledgerService, cfg.RateLimitPerMinute)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting splitledger server",
		"port", cfg.Port,
		"backend", cfg.StoreBackend,
		"events_enabled", res.Events != nil)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
