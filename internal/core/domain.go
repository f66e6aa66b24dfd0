package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	Daily   Granularity = "daily"
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

type (
	// Granularity selects the time-bucketing resolution for aggregations.
	Granularity string

	// Date is a calendar date with no time component, pinned to UTC midnight.
	Date struct {
		time.Time
	}

	// ExpenseRecord is a single validated expense entry. OwnerID is empty in
	// single-tenant deployments. Category is an open set: unrecognized names
	// are preserved as-is and compared case-sensitively.
	ExpenseRecord struct {
		ID          int64
		OwnerID     string
		Date        Date
		Category    string
		Amount      Money
		Description string
	}
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ValidationError reports a malformed record field. The Field name is part of
// the API contract: callers surface it to clients instead of swallowing it.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

func invalidField(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// AsValidationError unwraps err into a ValidationError when possible.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ParseGranularity maps a period query value to a Granularity.
// Empty input defaults to monthly.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.TrimSpace(s)) {
	case "":
		return Monthly, nil
	case Daily:
		return Daily, nil
	case Weekly:
		return Weekly, nil
	case Monthly:
		return Monthly, nil
	}
	return "", invalidField("period", fmt.Sprintf("unknown granularity %q", s))
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, invalidField("date", fmt.Sprintf("%q does not match %s", s, DateLayout))
	}
	return Date{Time: t.UTC()}, nil
}

// String renders the date in wire format.
func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return invalidField("date", "date cannot be zero")
	}
	return nil
}

func (e ExpenseRecord) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return invalidField("category", "category is required")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if len(e.Description) > 200 {
		return invalidField("description", "too long (max 200 characters)")
	}
	return nil
}

// NewExpenseRecord is the tagged ingestion constructor: it parses the raw
// wire fields and fails fast with a ValidationError naming the bad field.
// Records are never re-validated ad hoc at aggregation call sites.
func NewExpenseRecord(ownerID, dateStr, category, amountStr, description string) (ExpenseRecord, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return ExpenseRecord{}, err
	}
	cents, err := ParseDecimalToCents(amountStr)
	if err != nil {
		return ExpenseRecord{}, err
	}
	rec := ExpenseRecord{
		OwnerID:     ownerID,
		Date:        date,
		Category:    category,
		Amount:      Money{Cents: cents},
		Description: description,
	}
	if err := rec.Validate(); err != nil {
		return ExpenseRecord{}, err
	}
	return rec, nil
}
