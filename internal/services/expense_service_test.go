package services

import (
	"context"
	"errors"
	"testing"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

type recordedEvent struct {
	id     int64
	action string
}

type fakePublisher struct {
	events []recordedEvent
	err    error
}

func (p *fakePublisher) PublishExpenseEvent(_ context.Context, id int64, action string, _ int64) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, recordedEvent{id: id, action: action})
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func newTestRecord(t *testing.T) core.ExpenseRecord {
	t.Helper()
	rec, err := core.NewExpenseRecord("alice", "2024-01-02", "Food", "12.50", "lunch")
	if err != nil {
		t.Fatalf("NewExpenseRecord: %v", err)
	}
	return rec
}

func TestCreateExpensePublishesEvent(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewExpenseService(storage.NewMemoryStore(), pub)

	saved, err := svc.CreateExpense(ctx, newTestRecord(t))
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if saved.ID == 0 {
		t.Error("expected assigned ID")
	}
	if len(pub.events) != 1 || pub.events[0].action != amqp.ActionCreated {
		t.Errorf("events = %+v", pub.events)
	}
}

func TestCreateExpenseSurvivesPublishFailure(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewExpenseService(storage.NewMemoryStore(), pub)

	saved, err := svc.CreateExpense(ctx, newTestRecord(t))
	if err != nil {
		t.Fatalf("CreateExpense with broken publisher: %v", err)
	}

	// The record is still persisted.
	records, err := svc.ListExpenses(ctx, "alice")
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(records) != 1 || records[0].ID != saved.ID {
		t.Errorf("records = %+v", records)
	}
}

func TestCreateExpenseWithoutPublisher(t *testing.T) {
	svc := NewExpenseService(storage.NewMemoryStore(), nil)

	if _, err := svc.CreateExpense(context.Background(), newTestRecord(t)); err != nil {
		t.Fatalf("CreateExpense without publisher: %v", err)
	}
}

func TestDeleteExpense(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewExpenseService(storage.NewMemoryStore(), pub)

	saved, err := svc.CreateExpense(ctx, newTestRecord(t))
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	if err := svc.DeleteExpense(ctx, saved.ID, "alice"); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	if len(pub.events) != 2 || pub.events[1].action != amqp.ActionDeleted {
		t.Errorf("events = %+v", pub.events)
	}

	if err := svc.DeleteExpense(ctx, saved.ID, "alice"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second delete: err = %v, want ErrNotFound", err)
	}
}
