package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"expensetracker/internal/core"
)

// MemoryStore is an in-memory RecordStore and UserStore for tests and local
// development. It mirrors the SQLite semantics including soft deletes and the
// export queue.
type MemoryStore struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]memoryRecord
	users   map[string]User
}

type memoryRecord struct {
	rec      core.ExpenseRecord
	version  int64
	exported bool
	deleted  bool
	created  time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID:  1,
		records: make(map[int64]memoryRecord),
		users:   make(map[string]User),
	}
}

func (m *MemoryStore) Close() error { return nil }

func (m *MemoryStore) CreateExpense(_ context.Context, rec core.ExpenseRecord) (core.ExpenseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec.ID = m.nextID
	m.nextID++
	m.records[rec.ID] = memoryRecord{rec: rec, version: 1, created: time.Now().UTC()}
	return rec, nil
}

func (m *MemoryStore) DeleteExpense(_ context.Context, id int64, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.records[id]
	if !ok || entry.deleted {
		return ErrNotFound
	}
	if ownerID != "" && entry.rec.OwnerID != ownerID {
		return ErrNotFound
	}

	entry.deleted = true
	entry.exported = false
	entry.version++
	m.records[id] = entry
	return nil
}

func (m *MemoryStore) ListExpenses(_ context.Context, ownerID string) ([]core.ExpenseRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var records []core.ExpenseRecord
	for _, entry := range m.records {
		if entry.deleted {
			continue
		}
		if ownerID != "" && entry.rec.OwnerID != ownerID {
			continue
		}
		records = append(records, entry.rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date.Time) {
			return records[i].Date.Before(records[j].Date.Time)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

func (m *MemoryStore) GetExpense(_ context.Context, id int64) (core.ExpenseRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.records[id]
	if !ok {
		return core.ExpenseRecord{}, ErrNotFound
	}
	return entry.rec, nil
}

func (m *MemoryStore) IsDeleted(_ context.Context, id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.records[id]
	if !ok {
		return false, ErrNotFound
	}
	return entry.deleted, nil
}

func (m *MemoryStore) GetPendingExports(_ context.Context, limit int) ([]PendingExport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var pending []PendingExport
	for id, entry := range m.records {
		if entry.exported {
			continue
		}
		pending = append(pending, PendingExport{ID: id, Version: entry.version, CreatedAt: entry.created})
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID < pending[j].ID })
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (m *MemoryStore) MarkExported(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}
	entry.exported = true
	m.records[id] = entry
	return nil
}

func (m *MemoryStore) MarkExportError(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return ErrNotFound
	}
	return nil
}

func (m *MemoryStore) CreateUser(_ context.Context, u User) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return User{}, ErrDuplicateUser
		}
	}
	u.CreatedAt = time.Now().UTC()
	m.users[u.ID] = u
	return u, nil
}

func (m *MemoryStore) GetUserByUsername(_ context.Context, username string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (m *MemoryStore) GetUserByID(_ context.Context, id string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}
