package worker

import (
	"context"
	"testing"

	"splitledger/internal/amqp"
	"splitledger/internal/core"
	"splitledger/internal/log"
	sheetsmem "splitledger/internal/sheets/memory"
	"splitledger/internal/store"
	storemem "splitledger/internal/store/memory"
)

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func seedStore(t *testing.T, st store.Store) {
	t.Helper()
	drafts := []store.Draft{
		{Amount: core.Money{Cents: 60000}, Description: "Dinner", Payer: "Shantanu"},
		{Amount: core.Money{Cents: 45000}, Description: "Groceries", Payer: "Sanket"},
		{Amount: core.Money{Cents: 30000}, Description: "Petrol", Payer: "Om"},
		{Amount: core.Money{Cents: 50000}, Description: "Movie Tickets", Payer: "Shantanu"},
		{Amount: core.Money{Cents: 28000}, Description: "Pizza", Payer: "Sanket"},
	}
	for _, d := range drafts {
		if _, err := st.Add(context.Background(), d); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestHandleLedgerChangeMirrorsSnapshot(t *testing.T) {
	st := storemem.New()
	mirror := sheetsmem.New()
	w := NewSettleWorker(st, mirror, testLogger())
	seedStore(t, st)

	msg := &amqp.LedgerChangedMessage{ID: 5, Change: amqp.ChangeCreated}
	if err := w.HandleLedgerChange(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	expenses, settlements, writes := mirror.Snapshot()
	if writes != 1 {
		t.Fatalf("expected 1 write, got %d", writes)
	}
	if len(expenses) != 5 {
		t.Fatalf("expected 5 mirrored expenses, got %d", len(expenses))
	}
	if len(settlements) != 2 {
		t.Fatalf("expected 2 settlements, got %v", settlements)
	}
	if settlements[0].From != "Om" || settlements[0].To != "Shantanu" || settlements[0].Amount.Cents != 39000 {
		t.Fatalf("unexpected first settlement: %+v", settlements[0])
	}
}

func TestHandleLedgerChangeEmptyLedger(t *testing.T) {
	st := storemem.New()
	mirror := sheetsmem.New()
	w := NewSettleWorker(st, mirror, testLogger())

	if err := w.HandleLedgerChange(context.Background(), &amqp.LedgerChangedMessage{ID: 1, Change: amqp.ChangeDeleted}); err != nil {
		t.Fatalf("handle: %v", err)
	}
	expenses, settlements, writes := mirror.Snapshot()
	if writes != 1 || len(expenses) != 0 || len(settlements) != 0 {
		t.Fatalf("expected one empty snapshot, got %d expenses, %d settlements, %d writes",
			len(expenses), len(settlements), writes)
	}
}

func TestHandleLedgerChangeNoMirror(t *testing.T) {
	st := storemem.New()
	w := NewSettleWorker(st, nil, testLogger())
	seedStore(t, st)

	if err := w.HandleLedgerChange(context.Background(), &amqp.LedgerChangedMessage{ID: 1, Change: amqp.ChangeUpdated}); err != nil {
		t.Fatalf("handle without mirror: %v", err)
	}
}

func TestResync(t *testing.T) {
	st := storemem.New()
	mirror := sheetsmem.New()
	w := NewSettleWorker(st, mirror, testLogger())
	seedStore(t, st)

	if err := w.Resync(context.Background()); err != nil {
		t.Fatalf("resync: %v", err)
	}
	if _, _, writes := mirror.Snapshot(); writes != 1 {
		t.Fatalf("expected 1 write after resync, got %d", writes)
	}
}
