package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"splitledger/internal/core"
	"splitledger/internal/services"
	"splitledger/internal/store"
)

type (
	createExpenseRequest struct {
		Amount      json.RawMessage `json:"amount"`
		Description string          `json:"description"`
		PaidBy      string          `json:"paid_by"`
	}

	updateExpenseRequest struct {
		Amount      *json.RawMessage `json:"amount"`
		Description *string          `json:"description"`
		PaidBy      *string          `json:"paid_by"`
	}
)

// rawAmount turns a JSON amount value (number or quoted string) into the
// decimal string the core parser expects.
func rawAmount(raw json.RawMessage) string {
	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := s.expenses.Create(r.Context(), services.ExpenseInput{
		Amount:      rawAmount(req.Amount),
		Description: req.Description,
		Payer:       req.PaidBy,
	})
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Expense create error", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred while adding expense")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message": "Expense added successfully",
		"expense": toExpenseJSON(e),
	})
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	items, err := s.expenses.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Expense list error", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred while retrieving expenses")
		return
	}

	expenses := make([]expenseJSON, 0, len(items))
	for _, e := range items {
		expenses = append(expenses, toExpenseJSON(e))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":  fmt.Sprintf("Retrieved %d expenses", len(expenses)),
		"expenses": expenses,
	})
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := expenseID(w, r)
	if !ok {
		return
	}

	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var update services.ExpenseUpdate
	if req.Amount != nil {
		amount := rawAmount(*req.Amount)
		update.Amount = &amount
	}
	update.Description = req.Description
	update.Payer = req.PaidBy

	e, err := s.expenses.Update(r.Context(), id, update)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, fmt.Sprintf("Expense with ID %d not found", id))
		case isValidationError(err):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			slog.ErrorContext(r.Context(), "Expense update error", "error", err, "id", id)
			writeError(w, http.StatusInternalServerError, "an error occurred while updating expense")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Expense updated successfully",
		"expense": toExpenseJSON(e),
	})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := expenseID(w, r)
	if !ok {
		return
	}

	if err := s.expenses.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("Expense with ID %d not found", id))
			return
		}
		slog.ErrorContext(r.Context(), "Expense delete error", "error", err, "id", id)
		writeError(w, http.StatusInternalServerError, "an error occurred while deleting expense")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Expense with ID %d deleted successfully", id),
	})
}

// expenseID parses the {id} path segment, writing a 400 on failure.
func expenseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return 0, false
	}
	return id, true
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrEmptyDescription) ||
		errors.Is(err, core.ErrDescriptionTooLong) ||
		errors.Is(err, core.ErrEmptyPayer) ||
		errors.Is(err, core.ErrPayerTooLong)
}
