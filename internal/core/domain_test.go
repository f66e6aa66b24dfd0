package core

import (
	"testing"
)

func TestNewExpenseRecord(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		category  string
		amount    string
		wantErr   bool
		wantField string
	}{
		{
			name:     "valid record",
			date:     "2024-01-15",
			category: "Food",
			amount:   "42.50",
			wantErr:  false,
		},
		{
			name:     "zero amount is valid",
			date:     "2024-01-15",
			category: "Food",
			amount:   "0",
			wantErr:  false,
		},
		{
			name:      "negative amount",
			date:      "2024-01-15",
			category:  "Food",
			amount:    "-5",
			wantErr:   true,
			wantField: "amount",
		},
		{
			name:      "non-numeric amount",
			date:      "2024-01-15",
			category:  "Food",
			amount:    "abc",
			wantErr:   true,
			wantField: "amount",
		},
		{
			name:      "bad date format",
			date:      "15/01/2024",
			category:  "Food",
			amount:    "10",
			wantErr:   true,
			wantField: "date",
		},
		{
			name:      "impossible date",
			date:      "2024-02-31",
			category:  "Food",
			amount:    "10",
			wantErr:   true,
			wantField: "date",
		},
		{
			name:      "missing category",
			date:      "2024-01-15",
			category:  "  ",
			amount:    "10",
			wantErr:   true,
			wantField: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := NewExpenseRecord("owner-1", tt.date, tt.category, tt.amount, "lunch")
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExpenseRecord() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				ve, ok := AsValidationError(err)
				if !ok {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if ve.Field != tt.wantField {
					t.Errorf("ValidationError.Field = %q, want %q", ve.Field, tt.wantField)
				}
				return
			}
			if rec.OwnerID != "owner-1" {
				t.Errorf("OwnerID = %q, want owner-1", rec.OwnerID)
			}
			if rec.Category != tt.category {
				t.Errorf("Category = %q, want %q", rec.Category, tt.category)
			}
		})
	}
}

func TestCategoryCaseIsPreserved(t *testing.T) {
	// Categories are an open set and never normalized.
	rec, err := NewExpenseRecord("", "2024-01-01", "fOoD", "1", "")
	if err != nil {
		t.Fatalf("NewExpenseRecord() error = %v", err)
	}
	if rec.Category != "fOoD" {
		t.Errorf("Category = %q, want fOoD", rec.Category)
	}
}

func TestParseGranularity(t *testing.T) {
	tests := []struct {
		in      string
		want    Granularity
		wantErr bool
	}{
		{"daily", Daily, false},
		{"weekly", Weekly, false},
		{"monthly", Monthly, false},
		{"", Monthly, false},
		{"yearly", "", true},
		{"Weekly", "", true},
	}
	for _, tt := range tests {
		got, err := ParseGranularity(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseGranularity(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseGranularity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	d, err := ParseDate("2024-03-09")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if d.String() != "2024-03-09" {
		t.Errorf("Date.String() = %q, want 2024-03-09", d.String())
	}
}
