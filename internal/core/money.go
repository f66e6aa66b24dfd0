// Package core provides the expense record model and money handling.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between cents and currency-unit representations.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is a fixed-point monetary amount in cents. All aggregation arithmetic
// runs on cents so repeated summation never accumulates floating-point drift.
type Money struct {
	Cents int64
}

// ParseDecimalToCents converts a decimal string to cents with half-up
// rounding on the third decimal place. It accepts both dot (12.34) and comma
// (12,34) decimal separators. Zero is a valid amount; negative values and
// non-numeric input are a ValidationError on the amount field.
//
// Examples:
//
//	ParseDecimalToCents("12.34") -> 1234, nil
//	ParseDecimalToCents("12,34") -> 1234, nil
//	ParseDecimalToCents("12.345") -> 1234, nil (rounds down)
//	ParseDecimalToCents("12.346") -> 1235, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, invalidField("amount", "amount is required")
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "-") {
		return 0, invalidField("amount", "amount cannot be negative")
	}
	s = strings.TrimPrefix(s, "+")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, invalidField("amount", "not a decimal number")
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, invalidField("amount", "not a decimal number")
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, invalidField("amount", "not a decimal number")
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, invalidField("amount", "not a decimal number")
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, invalidField("amount", "amount too large")
	}
	// Take first two fractional digits; half-up rounding on the third
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return invalidField("amount", "amount cannot be negative")
	}
	return nil
}

// Units returns the currency-unit value as a float64 for serialization.
// Cents stay exact; use this only at the response boundary.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// RoundUnits rounds a fractional cents value to 2 decimal currency units.
// Derived statistics such as the daily average divide cents and must be
// rounded before leaving the service so representation noise is not exposed.
func RoundUnits(cents float64) float64 {
	return math.Round(cents) / 100.0
}
