package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true}, // zero amounts are allowed
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
			if _, ok := AsValidationError(err); !ok {
				t.Fatalf("%q expected ValidationError, got %T", tc.in, err)
			}
		}
	}
}

func TestMoneyUnits(t *testing.T) {
	if got := (Money{Cents: 1234}).Units(); got != 12.34 {
		t.Errorf("Units() = %v, want 12.34", got)
	}
}

func TestRoundUnits(t *testing.T) {
	cases := []struct {
		in  float64
		out float64
	}{
		{1234, 12.34},
		{1234.4, 12.34},
		{1234.5, 12.35},
		{0, 0},
	}
	for _, tc := range cases {
		if got := RoundUnits(tc.in); got != tc.out {
			t.Errorf("RoundUnits(%v) = %v, want %v", tc.in, got, tc.out)
		}
	}
}
