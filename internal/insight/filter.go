// Package insight turns a snapshot of expense records into category totals,
// time-bucketed sums, derived statistics, and rule-based recommendations.
//
// The package is a pure transformation layer: every entry point receives an
// immutable, request-scoped slice of records and produces a result with no
// shared mutable state, so it is safe to call concurrently from any number of
// request handlers.
package insight

import "expensetracker/internal/core"

// CategoryAll is the sentinel meaning "no category filter". It is matched
// case-sensitively: "All" is an ordinary category name.
const CategoryAll = "all"

// FilterOwner returns the records belonging to ownerID. An empty ownerID
// selects every record (single-tenant mode).
func FilterOwner(records []core.ExpenseRecord, ownerID string) []core.ExpenseRecord {
	if ownerID == "" {
		return records
	}
	out := make([]core.ExpenseRecord, 0, len(records))
	for _, r := range records {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out
}

// FilterCategory returns the records whose category exactly equals category.
// The CategoryAll sentinel disables filtering. An empty result is a valid,
// meaningful output, never an error.
func FilterCategory(records []core.ExpenseRecord, category string) []core.ExpenseRecord {
	if category == CategoryAll {
		return records
	}
	out := make([]core.ExpenseRecord, 0, len(records))
	for _, r := range records {
		if r.Category == category {
			out = append(out, r)
		}
	}
	return out
}
