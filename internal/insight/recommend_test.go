package insight

import (
	"strings"
	"testing"
)

func summaryWithCategories(totals map[string]int64) Summary {
	var total int64
	for _, c := range totals {
		total += c
	}
	return Summary{
		Total:          total,
		CategoryTotals: totals,
		Records:        len(totals),
	}
}

func TestRecommendEmptySet(t *testing.T) {
	got := Recommend(Summary{}, CategoryAll)

	if len(got) != 1 {
		t.Fatalf("empty set: got %d recommendations, want exactly 1", len(got))
	}
	if got[0].Priority != 1 {
		t.Errorf("onboarding priority = %d, want 1", got[0].Priority)
	}
	if !strings.Contains(got[0].Message, "Start tracking") {
		t.Errorf("onboarding message = %q", got[0].Message)
	}
}

func TestRecommendCategoryThresholds(t *testing.T) {
	// Food is 50%, Transport 8%, Rent 42%.
	s := summaryWithCategories(map[string]int64{
		"Food":      5000,
		"Transport": 800,
		"Rent":      4200,
	})

	tests := []struct {
		category     string
		wantPriority int
		wantContains string
	}{
		{"Food", 1, "Consider reducing"},
		{"Transport", 3, "doing well"},
		{"Rent", 2, "of your total budget"},
		// Unknown category has a 0% share and lands in the low branch.
		{"Travel", 3, "doing well"},
	}

	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			got := Recommend(s, tt.category)
			if len(got) != 1 {
				t.Fatalf("got %d recommendations, want 1", len(got))
			}
			if got[0].Priority != tt.wantPriority {
				t.Errorf("priority = %d, want %d", got[0].Priority, tt.wantPriority)
			}
			if !strings.Contains(got[0].Message, tt.wantContains) {
				t.Errorf("message = %q, want substring %q", got[0].Message, tt.wantContains)
			}
		})
	}
}

func TestRecommendAllWithDominantCategory(t *testing.T) {
	// Rent is 60% of the total, beyond the dominance threshold.
	s := summaryWithCategories(map[string]int64{
		"Rent": 6000,
		"Food": 4000,
	})

	got := Recommend(s, CategoryAll)
	if len(got) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(got))
	}
	if got[0].Priority != 1 || !strings.Contains(got[0].Message, "Rent") {
		t.Errorf("dominant recommendation = %+v", got[0])
	}
	if got[1].Priority != 2 || !strings.Contains(got[1].Message, "under 30%") {
		t.Errorf("budgeting tip = %+v", got[1])
	}
	if got[2].Priority != 3 || !strings.Contains(got[2].Message, "automatic savings") {
		t.Errorf("savings tip = %+v", got[2])
	}
}

func TestRecommendAllBalanced(t *testing.T) {
	// Three even categories, nothing dominates.
	s := summaryWithCategories(map[string]int64{
		"Rent": 3000,
		"Food": 3000,
		"Fun":  3000,
	})

	got := Recommend(s, CategoryAll)
	if len(got) != 2 {
		t.Fatalf("got %d recommendations, want 2", len(got))
	}
	if got[0].Priority != 2 || got[1].Priority != 3 {
		t.Errorf("priorities = %d, %d, want 2, 3", got[0].Priority, got[1].Priority)
	}
}

func TestRecommendOrdering(t *testing.T) {
	s := summaryWithCategories(map[string]int64{
		"Rent": 9000,
		"Food": 1000,
	})

	got := Recommend(s, CategoryAll)
	for i := 1; i < len(got); i++ {
		if got[i].Priority < got[i-1].Priority {
			t.Fatalf("recommendations not sorted by priority: %+v", got)
		}
	}
}

func TestRecommendZeroDenominator(t *testing.T) {
	// Records exist but every tracked amount is zero; shares resolve to 0%.
	s := Summary{
		CategoryTotals: map[string]int64{"Food": 0},
		Records:        1,
	}

	got := Recommend(s, "Food")
	if len(got) != 1 || got[0].Priority != 3 {
		t.Fatalf("zero denominator: got %+v, want single low-share recommendation", got)
	}
}
