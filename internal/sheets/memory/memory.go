// Package memory is an in-process BackupExporter used in tests and when no
// Google credentials are configured.
package memory

import (
	"context"
	"sync"

	"expensetracker/internal/core"
	ports "expensetracker/internal/sheets"
)

type Row struct {
	ID        int64
	Record    core.ExpenseRecord
	Version   int64
	Tombstone bool
}

type Exporter struct {
	mu   sync.Mutex
	rows []Row
}

var _ ports.BackupExporter = (*Exporter)(nil)

func NewExporter() *Exporter { return &Exporter{} }

func (e *Exporter) AppendRecord(_ context.Context, rec core.ExpenseRecord, version int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rows = append(e.rows, Row{ID: rec.ID, Record: rec, Version: version})
	return nil
}

func (e *Exporter) AppendTombstone(_ context.Context, id, version int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rows = append(e.rows, Row{ID: id, Version: version, Tombstone: true})
	return nil
}

// Rows returns a copy of everything appended so far.
func (e *Exporter) Rows() []Row {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Row, len(e.rows))
	copy(out, e.rows)
	return out
}
