package core

import "sort"

// party tracks one side of the greedy match: a debtor's or creditor's
// outstanding magnitude in cents.
type party struct {
	name      string
	remaining int64
}

// Match turns net balances into an ordered list of settlements using a
// greedy largest-first walk: the biggest debtor pays the biggest creditor
// until one side is exhausted. Participants inside the even band are dropped
// entirely; they neither pay nor receive.
//
// The result has at most len(debtors)+len(creditors)-1 entries. That is
// minimal for this single-pass strategy but not proven minimal over all
// possible payment graphs.
func Match(balances map[string]int64) []Settlement {
	if len(balances) == 0 {
		return nil
	}

	var debtors, creditors []party
	for name, net := range balances {
		switch {
		case net < -EvenBandCents:
			debtors = append(debtors, party{name: name, remaining: -net})
		case net > EvenBandCents:
			creditors = append(creditors, party{name: name, remaining: net})
		}
	}

	sortByMagnitude(debtors)
	sortByMagnitude(creditors)

	var settlements []Settlement
	i, j := 0, 0
	// Debtor and creditor totals agree up to rounding by construction, so
	// each step retires at least one side; the cap guards malformed input.
	for steps := len(debtors) + len(creditors); steps > 0 && i < len(debtors) && j < len(creditors); steps-- {
		amt := debtors[i].remaining
		if creditors[j].remaining < amt {
			amt = creditors[j].remaining
		}

		if amt > EvenBandCents {
			settlements = append(settlements, Settlement{
				From:   debtors[i].name,
				To:     creditors[j].name,
				Amount: Money{Cents: amt},
			})
		}
		debtors[i].remaining -= amt
		creditors[j].remaining -= amt

		if debtors[i].remaining < EvenBandCents {
			i++
		}
		if creditors[j].remaining < EvenBandCents {
			j++
		}
	}
	return settlements
}

// sortByMagnitude orders parties by remaining amount descending, with ties
// broken by name ascending so emission order is deterministic.
func sortByMagnitude(parties []party) {
	sort.Slice(parties, func(a, b int) bool {
		if parties[a].remaining != parties[b].remaining {
			return parties[a].remaining > parties[b].remaining
		}
		return parties[a].name < parties[b].name
	})
}
