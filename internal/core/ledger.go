package core

import "fmt"

// Reduce computes each participant's net balance in cents under an equal
// split: every distinct payer owes total/n regardless of who benefited from
// each expense. Positive net means the group owes that person.
//
// The result is a pure function of the snapshot; an empty snapshot yields an
// empty map. A non-empty snapshot with no payers violates the data model and
// is reported rather than dividing by zero.
func Reduce(expenses []Expense) (map[string]int64, error) {
	balances := make(map[string]int64)
	if len(expenses) == 0 {
		return balances, nil
	}

	var total int64
	paid := make(map[string]int64)
	for _, e := range expenses {
		total += e.Amount.Cents
		paid[e.Payer] += e.Amount.Cents
	}

	n := int64(len(paid))
	if n == 0 {
		return nil, ErrNoParticipants
	}

	// net = paid - total/n, rounded to the nearest cent half away from zero.
	// Computed as (paid*n - total)/n to stay in integer arithmetic.
	for payer, cents := range paid {
		balances[payer] = divRound(cents*n-total, n)
	}
	return balances, nil
}

// CheckZeroSum verifies that net balances cancel out. Per-participant
// rounding can leave at most half a cent each, so the tolerance scales with
// the participant count. A violation indicates a reducer defect, not bad
// user input.
func CheckZeroSum(balances map[string]int64) error {
	var sum int64
	for _, net := range balances {
		sum += net
	}
	tolerance := (int64(len(balances)) + 1) / 2
	if tolerance < EvenBandCents {
		tolerance = EvenBandCents
	}
	if sum > tolerance || sum < -tolerance {
		return fmt.Errorf("net balances sum to %d cents, outside tolerance %d", sum, tolerance)
	}
	return nil
}

// divRound divides num by den (den > 0), rounding half away from zero.
func divRound(num, den int64) int64 {
	q := num / den
	r := num % den
	if r == 0 {
		return q
	}
	if 2*abs(r) >= den {
		if num < 0 {
			return q - 1
		}
		return q + 1
	}
	return q
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
