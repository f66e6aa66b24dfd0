// Package services orchestrates expense operations across storage and AMQP.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"expensetracker/internal/amqp"
	"expensetracker/internal/core"
	"expensetracker/internal/storage"
)

// EventPublisher is the slice of the AMQP client the service depends on.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, id int64, action string, version int64) error
	Close() error
}

// ExpenseService saves records locally and announces changes to the export
// worker. The local write is authoritative; publish failures are logged and
// never fail the request.
type ExpenseService struct {
	store     storage.RecordStore
	publisher EventPublisher
}

func NewExpenseService(store storage.RecordStore, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		store:     store,
		publisher: publisher,
	}
}

func (s *ExpenseService) CreateExpense(ctx context.Context, rec core.ExpenseRecord) (core.ExpenseRecord, error) {
	saved, err := s.store.CreateExpense(ctx, rec)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("save expense: %w", err)
	}

	if err := s.publish(ctx, saved.ID, amqp.ActionCreated, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish create event",
			"id", saved.ID, "error", err)
	}

	return saved, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64, ownerID string) error {
	if err := s.store.DeleteExpense(ctx, id, ownerID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	if err := s.publish(ctx, id, amqp.ActionDeleted, 2); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete event",
			"id", id, "error", err)
	}

	return nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context, ownerID string) ([]core.ExpenseRecord, error) {
	return s.store.ListExpenses(ctx, ownerID)
}

func (s *ExpenseService) publish(ctx context.Context, id int64, action string, version int64) error {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP publisher not available, relying on pending-export scan", "id", id)
		return nil
	}
	return s.publisher.PublishExpenseEvent(ctx, id, action, version)
}

func (s *ExpenseService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %v", errs)
	}
	return nil
}
