// Package http provides the JSON API server: expense CRUD plus the derived
// balances, settlements and people views.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"splitledger/internal/core"
)

// expenseJSON is the wire shape of a single expense.
type expenseJSON struct {
	ID          int64   `json:"id"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	PaidBy      string  `json:"paid_by"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func toExpenseJSON(e core.Expense) expenseJSON {
	return expenseJSON{
		ID:          e.ID,
		Amount:      e.Amount.Float64(),
		Description: e.Description,
		PaidBy:      e.Payer,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
