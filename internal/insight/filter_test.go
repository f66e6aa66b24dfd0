package insight

import (
	"testing"

	"expensetracker/internal/core"
)

func TestFilterOwner(t *testing.T) {
	records := []core.ExpenseRecord{
		mustRecord(t, "alice", "2024-01-01", "Food", "10"),
		mustRecord(t, "bob", "2024-01-01", "Food", "20"),
		mustRecord(t, "alice", "2024-01-02", "Transport", "30"),
	}

	got := FilterOwner(records, "alice")
	if len(got) != 2 {
		t.Fatalf("FilterOwner(alice) returned %d records, want 2", len(got))
	}
	for _, r := range got {
		if r.OwnerID != "alice" {
			t.Errorf("record with OwnerID %q leaked into alice's view", r.OwnerID)
		}
	}

	// Empty owner selects everything (single-tenant mode).
	if got := FilterOwner(records, ""); len(got) != 3 {
		t.Errorf("FilterOwner(\"\") returned %d records, want 3", len(got))
	}
}

func TestFilterCategory(t *testing.T) {
	records := []core.ExpenseRecord{
		mustRecord(t, "", "2024-01-01", "Food", "10"),
		mustRecord(t, "", "2024-01-01", "food", "20"),
		mustRecord(t, "", "2024-01-02", "Transport", "30"),
	}

	// Exact, case-sensitive match.
	got := FilterCategory(records, "Food")
	if len(got) != 1 || got[0].Category != "Food" {
		t.Fatalf("FilterCategory(Food) = %v, want the single Food record", got)
	}

	// Unknown category yields an empty result, not an error.
	if got := FilterCategory(records, "Travel"); len(got) != 0 {
		t.Errorf("FilterCategory(Travel) returned %d records, want 0", len(got))
	}
}

func TestFilterCategoryAllIsIdempotent(t *testing.T) {
	records := sampleRecords(t)

	once := FilterCategory(records, CategoryAll)
	twice := FilterCategory(once, CategoryAll)
	if len(once) != len(records) || len(twice) != len(once) {
		t.Errorf("filtering by %q changed the set: %d -> %d -> %d", CategoryAll, len(records), len(once), len(twice))
	}
	for i := range once {
		if twice[i] != once[i] {
			t.Fatalf("record %d changed across idempotent filter", i)
		}
	}
}
