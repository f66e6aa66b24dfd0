// Package sheets defines the backup export surface and its Google Sheets
// implementation.
package sheets

import (
	"context"

	"expensetracker/internal/core"
)

// BackupExporter appends expense rows to an external backup sheet.
// Deletions are exported as tombstone rows so the backup stays append-only.
type BackupExporter interface {
	AppendRecord(ctx context.Context, rec core.ExpenseRecord, version int64) error
	AppendTombstone(ctx context.Context, id, version int64) error
}
