package services

import (
	"context"
	"reflect"
	"testing"

	"splitledger/internal/core"
	"splitledger/internal/store/memory"
)

func seededLedger(t *testing.T) (*LedgerService, *ExpenseService) {
	t.Helper()
	st := memory.New()
	expenses := NewExpenseService(st, nil)
	ledger := NewLedgerService(st)

	seed := []ExpenseInput{
		{Amount: "600", Description: "Dinner", Payer: "Shantanu"},
		{Amount: "450", Description: "Groceries", Payer: "Sanket"},
		{Amount: "300", Description: "Petrol", Payer: "Om"},
		{Amount: "500", Description: "Movie Tickets", Payer: "Shantanu"},
		{Amount: "280", Description: "Pizza", Payer: "Sanket"},
	}
	for _, in := range seed {
		if _, err := expenses.Create(context.Background(), in); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return ledger, expenses
}

func TestBalancesView(t *testing.T) {
	ledger, _ := seededLedger(t)
	entries, err := ledger.Balances(context.Background())
	if err != nil {
		t.Fatalf("balances: %v", err)
	}

	want := []BalanceEntry{
		{Person: "Om", Balance: core.Money{Cents: 41000}, Status: core.StatusOwes},
		{Person: "Sanket", Balance: core.Money{Cents: 2000}, Status: core.StatusGets},
		{Person: "Shantanu", Balance: core.Money{Cents: 39000}, Status: core.StatusGets},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Fatalf("unexpected balances:\n got %+v\nwant %+v", entries, want)
	}
}

func TestSettlementsView(t *testing.T) {
	ledger, _ := seededLedger(t)
	settlements, err := ledger.Settlements(context.Background())
	if err != nil {
		t.Fatalf("settlements: %v", err)
	}
	if len(settlements) != 2 {
		t.Fatalf("expected 2 settlements, got %v", settlements)
	}
	if settlements[0].From != "Om" || settlements[0].To != "Shantanu" || settlements[0].Amount.Cents != 39000 {
		t.Fatalf("unexpected first settlement: %+v", settlements[0])
	}
	if settlements[1].From != "Om" || settlements[1].To != "Sanket" || settlements[1].Amount.Cents != 2000 {
		t.Fatalf("unexpected second settlement: %+v", settlements[1])
	}
}

func TestPeopleView(t *testing.T) {
	ledger, _ := seededLedger(t)
	people, err := ledger.People(context.Background())
	if err != nil {
		t.Fatalf("people: %v", err)
	}
	if len(people) != 3 {
		t.Fatalf("expected 3 people, got %d", len(people))
	}
	if people[0].Name != "Om" || people[1].Name != "Sanket" || people[2].Name != "Shantanu" {
		t.Fatalf("people not sorted by name: %+v", people)
	}
	sanket := people[1]
	if sanket.TotalPaid.Cents != 73000 || sanket.ExpenseCount != 2 || sanket.Balance != 2000 {
		t.Fatalf("unexpected summary for Sanket: %+v", sanket)
	}
}

func TestReadsAreIdempotent(t *testing.T) {
	ledger, _ := seededLedger(t)
	ctx := context.Background()

	first, err := ledger.Balances(ctx)
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	second, err := ledger.Balances(ctx)
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("Balances not idempotent on unchanged snapshot")
	}

	s1, _ := ledger.Settlements(ctx)
	s2, _ := ledger.Settlements(ctx)
	if !reflect.DeepEqual(s1, s2) {
		t.Fatal("Settlements not idempotent on unchanged snapshot")
	}

	p1, _ := ledger.People(ctx)
	p2, _ := ledger.People(ctx)
	if !reflect.DeepEqual(p1, p2) {
		t.Fatal("People not idempotent on unchanged snapshot")
	}
}

func TestEmptyLedger(t *testing.T) {
	ledger := NewLedgerService(memory.New())
	ctx := context.Background()

	balances, err := ledger.Balances(ctx)
	if err != nil || len(balances) != 0 {
		t.Fatalf("expected empty balances, got %v (err=%v)", balances, err)
	}
	settlements, err := ledger.Settlements(ctx)
	if err != nil || len(settlements) != 0 {
		t.Fatalf("expected no settlements, got %v (err=%v)", settlements, err)
	}
	people, err := ledger.People(ctx)
	if err != nil || len(people) != 0 {
		t.Fatalf("expected no people, got %v (err=%v)", people, err)
	}
}

func TestSingleParticipantIsEven(t *testing.T) {
	st := memory.New()
	expenses := NewExpenseService(st, nil)
	ledger := NewLedgerService(st)
	ctx := context.Background()

	if _, err := expenses.Create(ctx, ExpenseInput{Amount: "50", Description: "Solo", Payer: "Alice"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	balances, err := ledger.Balances(ctx)
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	if len(balances) != 1 || balances[0].Status != core.StatusEven || balances[0].Balance.Cents != 0 {
		t.Fatalf("sole payer must be even: %+v", balances)
	}
	settlements, _ := ledger.Settlements(ctx)
	if len(settlements) != 0 {
		t.Fatalf("expected no settlements, got %v", settlements)
	}
}

func TestViewsReflectDeletes(t *testing.T) {
	ledger, expenses := seededLedger(t)
	ctx := context.Background()

	// Delete Om's only expense; Om disappears from every view.
	snapshot, _ := expenses.List(ctx)
	for _, e := range snapshot {
		if e.Payer == "Om" {
			if err := expenses.Delete(ctx, e.ID); err != nil {
				t.Fatalf("delete: %v", err)
			}
		}
	}

	balances, _ := ledger.Balances(ctx)
	for _, b := range balances {
		if b.Person == "Om" {
			t.Fatalf("Om still present after delete: %+v", balances)
		}
	}
	people, _ := ledger.People(ctx)
	if len(people) != 2 {
		t.Fatalf("expected 2 people, got %+v", people)
	}
}
