package worker

import (
	"context"
	"testing"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
	"expensetracker/internal/sheets/memory"
	"expensetracker/internal/storage"
)

func seedRecord(t *testing.T, store *storage.MemoryStore) core.ExpenseRecord {
	t.Helper()
	rec, err := core.NewExpenseRecord("alice", "2024-01-02", "Food", "12.50", "lunch")
	if err != nil {
		t.Fatalf("NewExpenseRecord: %v", err)
	}
	saved, err := store.CreateExpense(context.Background(), rec)
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	return saved
}

func TestHandleEventExportsRecord(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	exporter := memory.NewExporter()
	w := NewExportWorker(store, exporter, 10)

	saved := seedRecord(t, store)

	msg := amqp.NewExpenseEventMessage(saved.ID, amqp.ActionCreated, 1)
	if err := w.HandleEvent(ctx, msg); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	rows := exporter.Rows()
	if len(rows) != 1 || rows[0].Tombstone || rows[0].Record.ID != saved.ID {
		t.Fatalf("rows = %+v", rows)
	}

	pending, _ := store.GetPendingExports(ctx, 10)
	if len(pending) != 0 {
		t.Errorf("record still pending after export: %+v", pending)
	}
}

func TestHandleEventExportsTombstone(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	exporter := memory.NewExporter()
	w := NewExportWorker(store, exporter, 10)

	saved := seedRecord(t, store)
	if err := store.DeleteExpense(ctx, saved.ID, "alice"); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}

	msg := amqp.NewExpenseEventMessage(saved.ID, amqp.ActionDeleted, 2)
	if err := w.HandleEvent(ctx, msg); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	rows := exporter.Rows()
	if len(rows) != 1 || !rows[0].Tombstone || rows[0].ID != saved.ID {
		t.Fatalf("rows = %+v", rows)
	}
}

func TestProcessPendingDrainsQueue(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	exporter := memory.NewExporter()
	w := NewExportWorker(store, exporter, 10)

	seedRecord(t, store)
	seedRecord(t, store)

	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("ProcessPending: %v", err)
	}
	if got := len(exporter.Rows()); got != 2 {
		t.Errorf("exported %d rows, want 2", got)
	}

	// Queue is now empty and a second run is a no-op.
	if err := w.ProcessPending(ctx); err != nil {
		t.Fatalf("second ProcessPending: %v", err)
	}
	if got := len(exporter.Rows()); got != 2 {
		t.Errorf("re-exported rows: got %d, want 2", got)
	}
}

func TestStartupCheckEmptyQueue(t *testing.T) {
	w := NewExportWorker(storage.NewMemoryStore(), memory.NewExporter(), 10)
	if err := w.StartupCheck(context.Background()); err != nil {
		t.Fatalf("StartupCheck: %v", err)
	}
}
