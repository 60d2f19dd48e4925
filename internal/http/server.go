package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"splitledger/internal/services"
)

const serviceVersion = "1.0.0"

type Server struct {
	http.Server
	expenses    *services.ExpenseService
	ledger      *services.LedgerService
	rateLimiter *rateLimiter

	shutdownOnce sync.Once
}

// NewServer wires routes and middleware, returning a ready-to-run server.
func NewServer(addr string, expenses *services.ExpenseService, ledger *services.LedgerService, rateLimitPerMinute int) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		expenses:    expenses,
		ledger:      ledger,
		rateLimiter: newRateLimiter(rateLimitPerMinute),
	}

	mux.HandleFunc("GET /{$}", s.withMiddleware(s.handleRoot))
	mux.HandleFunc("GET /health", handleHealth)
	mux.HandleFunc("POST /expenses", s.withMiddleware(s.handleCreateExpense))
	mux.HandleFunc("GET /expenses", s.withMiddleware(s.handleListExpenses))
	mux.HandleFunc("PUT /expenses/{id}", s.withMiddleware(s.handleUpdateExpense))
	mux.HandleFunc("DELETE /expenses/{id}", s.withMiddleware(s.handleDeleteExpense))
	mux.HandleFunc("GET /balances", s.withMiddleware(s.handleBalances))
	mux.HandleFunc("GET /settlements", s.withMiddleware(s.handleSettlements))
	mux.HandleFunc("GET /people", s.withMiddleware(s.handlePeople))

	return s
}

// Shutdown stops the middleware goroutines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// withMiddleware adds request IDs, security headers, rate limiting for
// mutating methods, and start/end logging.
func (s *Server) withMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := generateRequestID()
		ctx := r.Context()

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		if isMutating(r.Method) && !s.rateLimiter.allow(clientIP) {
			slog.WarnContext(ctx, "Rate limit exceeded",
				"request_id", requestID, "client_ip", clientIP, "method", r.Method, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", clientIP)
	}
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter captures the status code for request logging.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Split ledger API is running",
		"version": serviceVersion,
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "splitledger",
		"version": serviceVersion,
	})
}
