package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"splitledger/internal/core"
)

type (
	balanceJSON struct {
		Person  string  `json:"person"`
		Balance float64 `json:"balance"`
		Status  string  `json:"status"`
	}

	settlementJSON struct {
		FromPerson string  `json:"from_person"`
		ToPerson   string  `json:"to_person"`
		Amount     float64 `json:"amount"`
	}

	personJSON struct {
		Name          string  `json:"name"`
		TotalPaid     float64 `json:"total_paid"`
		TotalExpenses int     `json:"total_expenses"`
		Balance       float64 `json:"balance"`
	}
)

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	entries, err := s.ledger.Balances(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Balance calculation error", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred while calculating balances")
		return
	}

	balances := make([]balanceJSON, 0, len(entries))
	for _, e := range entries {
		balances = append(balances, balanceJSON{
			Person:  e.Person,
			Balance: e.Balance.Float64(),
			Status:  e.Status,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":  "Balances calculated successfully",
		"balances": balances,
	})
}

func (s *Server) handleSettlements(w http.ResponseWriter, r *http.Request) {
	plan, err := s.ledger.Settlements(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Settlement calculation error", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred while calculating settlements")
		return
	}

	settlements := make([]settlementJSON, 0, len(plan))
	for _, st := range plan {
		settlements = append(settlements, settlementJSON{
			FromPerson: st.From,
			ToPerson:   st.To,
			Amount:     st.Amount.Float64(),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message":            "Settlements calculated successfully",
		"settlements":        settlements,
		"total_transactions": len(settlements),
	})
}

func (s *Server) handlePeople(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.ledger.People(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "People summary error", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred while retrieving people")
		return
	}

	people := make([]personJSON, 0, len(summaries))
	for _, p := range summaries {
		people = append(people, personJSON{
			Name:          p.Name,
			TotalPaid:     p.TotalPaid.Float64(),
			TotalExpenses: p.ExpenseCount,
			Balance:       core.CentsToFloat(p.Balance),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"message": fmt.Sprintf("Retrieved %d people", len(people)),
		"people":  people,
	})
}
