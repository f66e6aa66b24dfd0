package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"expensetracker/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements RecordStore, UserStore and ExportQueue on a single
// SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) CreateExpense(ctx context.Context, rec core.ExpenseRecord) (core.ExpenseRecord, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (owner_id, date, category, amount_cents, description)
		VALUES (?, ?, ?, ?, ?)`,
		rec.OwnerID, rec.Date.String(), rec.Category, rec.Amount.Cents, rec.Description)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("expense insert id: %w", err)
	}
	rec.ID = id

	slog.InfoContext(ctx, "Expense saved",
		"id", rec.ID,
		"owner_id", rec.OwnerID,
		"category", rec.Category,
		"amount_cents", rec.Amount.Cents)

	return rec, nil
}

func (s *SQLiteStore) DeleteExpense(ctx context.Context, id int64, ownerID string) error {
	query := `
		UPDATE expenses
		SET deleted_at = CURRENT_TIMESTAMP,
		    export_status = 'pending',
		    version = version + 1
		WHERE id = ? AND deleted_at IS NULL`
	args := []any{id}
	if ownerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, ownerID)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete expense rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id, "owner_id", ownerID)
	return nil
}

func (s *SQLiteStore) ListExpenses(ctx context.Context, ownerID string) ([]core.ExpenseRecord, error) {
	query := `
		SELECT id, owner_id, date, category, amount_cents, description
		FROM expenses
		WHERE deleted_at IS NULL`
	var args []any
	if ownerID != "" {
		query += ` AND owner_id = ?`
		args = append(args, ownerID)
	}
	query += ` ORDER BY date, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	var records []core.ExpenseRecord
	for rows.Next() {
		rec, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expenses rows: %w", err)
	}

	return records, nil
}

func (s *SQLiteStore) GetExpense(ctx context.Context, id int64) (core.ExpenseRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, date, category, amount_cents, description
		FROM expenses
		WHERE id = ?`, id)

	rec, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ExpenseRecord{}, ErrNotFound
	}
	return rec, err
}

// IsDeleted reports whether a record exists and carries a tombstone.
func (s *SQLiteStore) IsDeleted(ctx context.Context, id int64) (bool, error) {
	var deletedAt sql.NullTime
	err := s.db.QueryRowContext(ctx,
		`SELECT deleted_at FROM expenses WHERE id = ?`, id).Scan(&deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("get expense tombstone: %w", err)
	}
	return deletedAt.Valid, nil
}

func (s *SQLiteStore) GetPendingExports(ctx context.Context, limit int) ([]PendingExport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, version, created_at
		FROM expenses
		WHERE export_status = 'pending'
		ORDER BY id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending exports: %w", err)
	}
	defer rows.Close()

	var pending []PendingExport
	for rows.Next() {
		var p PendingExport
		var createdAt time.Time
		if err := rows.Scan(&p.ID, &p.Version, &createdAt); err != nil {
			return nil, fmt.Errorf("scan pending export: %w", err)
		}
		p.CreatedAt = createdAt
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pending exports rows: %w", err)
	}

	return pending, nil
}

func (s *SQLiteStore) MarkExported(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET export_status = 'exported' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark exported: %w", err)
	}
	slog.InfoContext(ctx, "Expense marked as exported", "id", id)
	return nil
}

func (s *SQLiteStore) MarkExportError(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE expenses SET export_status = 'error' WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark export error: %w", err)
	}
	slog.WarnContext(ctx, "Expense marked with export error", "id", id)
	return nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, u User) (User, error) {
	u.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, ErrDuplicateUser
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}

	slog.InfoContext(ctx, "User created", "user_id", u.ID, "username", u.Username)
	return u, nil
}

func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (User, error) {
	return s.getUser(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?`, username)
}

func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (User, error) {
	return s.getUser(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`, id)
}

func (s *SQLiteStore) getUser(ctx context.Context, query string, arg any) (User, error) {
	var u User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.ExpenseRecord, error) {
	var rec core.ExpenseRecord
	var dateStr string
	var cents int64
	if err := row.Scan(&rec.ID, &rec.OwnerID, &dateStr, &rec.Category, &cents, &rec.Description); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ExpenseRecord{}, err
		}
		return core.ExpenseRecord{}, fmt.Errorf("scan expense: %w", err)
	}

	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("stored date %q: %w", dateStr, err)
	}
	rec.Date = date
	rec.Amount = core.Money{Cents: cents}
	return rec, nil
}

func isUniqueViolation(err error) bool {
	// modernc.org/sqlite surfaces constraint failures in the error text.
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}
