package insight

import (
	"testing"

	"expensetracker/internal/core"
)

func TestKeyForLabels(t *testing.T) {
	tests := []struct {
		name string
		date core.Date
		gran core.Granularity
		want string
	}{
		{"daily", core.NewDate(2024, 1, 8), core.Daily, "2024-01-08"},
		{"monthly", core.NewDate(2024, 1, 8), core.Monthly, "2024-01"},
		{"weekly", core.NewDate(2024, 1, 8), core.Weekly, "2024-W02"},
		// 2024-01-01 is a Monday, first day of ISO week 1.
		{"weekly first week", core.NewDate(2024, 1, 1), core.Weekly, "2024-W01"},
		// 2023-01-01 is a Sunday and belongs to 2022's last ISO week.
		{"weekly year boundary", core.NewDate(2023, 1, 1), core.Weekly, "2022-W52"},
		// 2020-12-31 falls in ISO week 53 of 2020.
		{"weekly week 53", core.NewDate(2020, 12, 31), core.Weekly, "2020-W53"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeyFor(tt.date, tt.gran).Label()
			if got != tt.want {
				t.Errorf("KeyFor(%s, %s).Label() = %q, want %q", tt.date, tt.gran, got, tt.want)
			}
		})
	}
}

func TestLabelRoundTrip(t *testing.T) {
	dates := []core.Date{
		core.NewDate(2024, 1, 1),
		core.NewDate(2023, 1, 1),
		core.NewDate(2020, 12, 31),
		core.NewDate(2024, 7, 15),
	}
	grans := []core.Granularity{core.Daily, core.Weekly, core.Monthly}

	for _, d := range dates {
		for _, g := range grans {
			key := KeyFor(d, g)
			parsed, err := ParseLabel(key.Label(), g)
			if err != nil {
				t.Fatalf("ParseLabel(%q, %s) error = %v", key.Label(), g, err)
			}
			if parsed != key {
				t.Errorf("round trip %q: got %+v, want %+v", key.Label(), parsed, key)
			}
		}
	}
}

func TestParseLabelRejectsMalformed(t *testing.T) {
	tests := []struct {
		label string
		gran  core.Granularity
	}{
		{"2024-13", core.Monthly},
		{"2024", core.Monthly},
		{"2024-W54", core.Weekly},
		{"2024-02", core.Weekly},
		{"2024-02-30", core.Daily},
	}
	for _, tt := range tests {
		if _, err := ParseLabel(tt.label, tt.gran); err == nil {
			t.Errorf("ParseLabel(%q, %s) expected error", tt.label, tt.gran)
		}
	}
}
