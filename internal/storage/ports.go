// Package storage persists expense records and user accounts.
package storage

import (
	"context"
	"errors"
	"time"

	"expensetracker/internal/core"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("storage: not found")

// ErrDuplicateUser is returned when a username or email is already taken.
var ErrDuplicateUser = errors.New("storage: user already exists")

// User is a registered account. IDs are UUIDs assigned at creation.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// RecordStore is the persistence surface the HTTP layer depends on.
type RecordStore interface {
	CreateExpense(ctx context.Context, rec core.ExpenseRecord) (core.ExpenseRecord, error)
	// DeleteExpense soft-deletes a record. A non-empty ownerID restricts the
	// delete to that owner's rows.
	DeleteExpense(ctx context.Context, id int64, ownerID string) error
	// ListExpenses returns the live records for an owner, oldest first.
	// An empty ownerID selects all records.
	ListExpenses(ctx context.Context, ownerID string) ([]core.ExpenseRecord, error)
	Close() error
}

// UserStore manages accounts for the authentication endpoints.
type UserStore interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetUserByUsername(ctx context.Context, username string) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)
}

// PendingExport is the minimal row shape the export queue works with.
type PendingExport struct {
	ID        int64
	Version   int64
	CreatedAt time.Time
}

// ExportQueue tracks which records still need to reach the backup sheet.
type ExportQueue interface {
	GetPendingExports(ctx context.Context, limit int) ([]PendingExport, error)
	GetExpense(ctx context.Context, id int64) (core.ExpenseRecord, error)
	MarkExported(ctx context.Context, id int64) error
	MarkExportError(ctx context.Context, id int64) error
}
