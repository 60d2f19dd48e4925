package core

import "sort"

// Summarize aggregates per-participant totals from the snapshot and attaches
// the signed net balance, sorted by name ascending. Note the asymmetry with
// the balances view: that one exposes |net| plus a status tag, while the
// summary carries the signed net directly. Both derive from the same Reduce
// output.
func Summarize(expenses []Expense, balances map[string]int64) []PersonSummary {
	totals := make(map[string]*PersonSummary)
	for _, e := range expenses {
		s, ok := totals[e.Payer]
		if !ok {
			s = &PersonSummary{Name: e.Payer}
			totals[e.Payer] = s
		}
		s.TotalPaid.Cents += e.Amount.Cents
		s.ExpenseCount++
	}

	people := make([]PersonSummary, 0, len(totals))
	for name, s := range totals {
		s.Balance = balances[name]
		people = append(people, *s)
	}
	sort.Slice(people, func(a, b int) bool {
		return people[a].Name < people[b].Name
	})
	return people
}
