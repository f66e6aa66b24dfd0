// Package worker moves locally saved expenses into the Google Sheets backup.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"expensetracker/internal/amqp"
	"expensetracker/internal/sheets"
	"expensetracker/internal/storage"
)

// Store is the storage surface the worker needs: the export queue plus
// tombstone lookup.
type Store interface {
	storage.ExportQueue
	IsDeleted(ctx context.Context, id int64) (bool, error)
}

// ExportWorker exports pending expense rows. It is driven by AMQP events and
// backed by a periodic pending-row scan that recovers from lost messages.
type ExportWorker struct {
	store     Store
	exporter  sheets.BackupExporter
	batchSize int
}

func NewExportWorker(store Store, exporter sheets.BackupExporter, batchSize int) *ExportWorker {
	return &ExportWorker{
		store:     store,
		exporter:  exporter,
		batchSize: batchSize,
	}
}

// HandleEvent processes a single expense event from AMQP.
func (w *ExportWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	slog.InfoContext(ctx, "Processing expense event",
		"id", msg.ID,
		"action", msg.Action,
		"version", msg.Version)

	return w.exportRecord(ctx, msg.ID, msg.Version)
}

// ProcessPending exports any rows the event stream missed.
func (w *ExportWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.store.GetPendingExports(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending exports: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending exports", "count", len(pending))

	for _, p := range pending {
		if err := w.exportRecord(ctx, p.ID, p.Version); err != nil {
			slog.ErrorContext(ctx, "Failed to export pending record",
				"id", p.ID, "error", err)
		}
	}

	return nil
}

// StartupCheck drains a larger pending batch once at worker start, recovering
// from downtime before event consumption begins.
func (w *ExportWorker) StartupCheck(ctx context.Context) error {
	pending, err := w.store.GetPendingExports(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending exports for startup check: %w", err)
	}
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending exports found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending exports on startup", "count", len(pending))

	exported := 0
	failed := 0
	for _, p := range pending {
		if err := w.exportRecord(ctx, p.ID, p.Version); err != nil {
			slog.ErrorContext(ctx, "Failed to export record during startup",
				"id", p.ID, "error", err)
			failed++
			continue
		}
		exported++
	}

	slog.InfoContext(ctx, "Startup export check completed",
		"total", len(pending),
		"exported", exported,
		"errors", failed)

	return nil
}

func (w *ExportWorker) exportRecord(ctx context.Context, id, version int64) error {
	deleted, err := w.store.IsDeleted(ctx, id)
	if err != nil {
		if markErr := w.store.MarkExportError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error", "id", id, "error", markErr)
		}
		return fmt.Errorf("lookup record %d: %w", id, err)
	}

	if deleted {
		if err := w.exporter.AppendTombstone(ctx, id, version); err != nil {
			if markErr := w.store.MarkExportError(ctx, id); markErr != nil {
				slog.ErrorContext(ctx, "Failed to mark export error", "id", id, "error", markErr)
			}
			return fmt.Errorf("append tombstone: %w", err)
		}
	} else {
		rec, err := w.store.GetExpense(ctx, id)
		if err != nil {
			return fmt.Errorf("get expense %d: %w", id, err)
		}
		if err := w.exporter.AppendRecord(ctx, rec, version); err != nil {
			if markErr := w.store.MarkExportError(ctx, id); markErr != nil {
				slog.ErrorContext(ctx, "Failed to mark export error", "id", id, "error", markErr)
			}
			return fmt.Errorf("append record: %w", err)
		}
	}

	if err := w.store.MarkExported(ctx, id); err != nil {
		// The export itself succeeded; only the bookkeeping failed.
		slog.ErrorContext(ctx, "Failed to mark as exported", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Exported expense", "id", id, "deleted", deleted)
	return nil
}
