package services

import (
	"context"
	"errors"
	"testing"

	"splitledger/internal/amqp"
	"splitledger/internal/core"
	"splitledger/internal/store"
	"splitledger/internal/store/memory"
)

type recordingPublisher struct {
	events []string
	err    error
}

func (p *recordingPublisher) PublishLedgerChange(_ context.Context, id int64, change string) error {
	p.events = append(p.events, change)
	return p.err
}

func TestCreateNormalizesInput(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewExpenseService(memory.New(), pub)
	ctx := context.Background()

	e, err := svc.Create(ctx, ExpenseInput{
		Amount:      "600",
		Description: "  Dinner  ",
		Payer:       "  shantanu  ",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Amount.Cents != 60000 {
		t.Fatalf("expected 60000 cents, got %d", e.Amount.Cents)
	}
	if e.Description != "Dinner" {
		t.Fatalf("description not trimmed: %q", e.Description)
	}
	if e.Payer != "Shantanu" {
		t.Fatalf("payer not normalized: %q", e.Payer)
	}
	if len(pub.events) != 1 || pub.events[0] != amqp.ChangeCreated {
		t.Fatalf("expected created event, got %v", pub.events)
	}
}

func TestCreateRejectsBadAmount(t *testing.T) {
	svc := NewExpenseService(memory.New(), nil)
	cases := []string{"", "0", "-5", "12.345", "abc"}
	for _, amount := range cases {
		if _, err := svc.Create(context.Background(), ExpenseInput{
			Amount: amount, Description: "x", Payer: "Alice",
		}); !errors.Is(err, core.ErrInvalidAmount) {
			t.Fatalf("amount %q: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestUpdatePartial(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewExpenseService(memory.New(), pub)
	ctx := context.Background()

	e, err := svc.Create(ctx, ExpenseInput{Amount: "100", Description: "Dinner", Payer: "alice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	amount := "250.50"
	updated, err := svc.Update(ctx, e.ID, ExpenseUpdate{Amount: &amount})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Amount.Cents != 25050 || updated.Payer != "Alice" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if len(pub.events) != 2 || pub.events[1] != amqp.ChangeUpdated {
		t.Fatalf("expected updated event, got %v", pub.events)
	}

	if _, err := svc.Update(ctx, 999, ExpenseUpdate{Amount: &amount}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeletePublishes(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewExpenseService(memory.New(), pub)
	ctx := context.Background()

	e, err := svc.Create(ctx, ExpenseInput{Amount: "100", Description: "Dinner", Payer: "alice"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(pub.events) != 2 || pub.events[1] != amqp.ChangeDeleted {
		t.Fatalf("expected deleted event, got %v", pub.events)
	}
	if err := svc.Delete(ctx, e.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewExpenseService(memory.New(), pub)

	e, err := svc.Create(context.Background(), ExpenseInput{Amount: "100", Description: "Dinner", Payer: "alice"})
	if err != nil {
		t.Fatalf("create must succeed despite publish failure: %v", err)
	}
	if e.ID == 0 {
		t.Fatal("expense not stored")
	}
}
