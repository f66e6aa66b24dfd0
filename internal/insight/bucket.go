package insight

import (
	"fmt"
	"strconv"
	"strings"

	"expensetracker/internal/core"
)

// BucketKey identifies the time bucket a record's date maps into for one
// granularity. Keys are derived, never persisted. Week numbering is ISO-8601
// at every call site; near year boundaries an early-January date can land in
// the previous ISO year's last week.
type BucketKey struct {
	Granularity core.Granularity
	Year        int
	Month       int // 1-12, monthly and daily
	Day         int // 1-31, daily only
	Week        int // 1-53, weekly only
}

// KeyFor derives the bucket key for a date at the given granularity.
// Each date maps to exactly one bucket per granularity.
func KeyFor(d core.Date, g core.Granularity) BucketKey {
	switch g {
	case core.Daily:
		return BucketKey{
			Granularity: core.Daily,
			Year:        d.Year(),
			Month:       int(d.Time.Month()),
			Day:         d.Time.Day(),
		}
	case core.Weekly:
		year, week := d.ISOWeek()
		return BucketKey{Granularity: core.Weekly, Year: year, Week: week}
	default:
		return BucketKey{
			Granularity: core.Monthly,
			Year:        d.Year(),
			Month:       int(d.Time.Month()),
		}
	}
}

// Label encodes the key as its wire-format period label:
// daily YYYY-MM-DD, weekly YYYY-Www (ISO week, two digits), monthly YYYY-MM.
func (k BucketKey) Label() string {
	switch k.Granularity {
	case core.Daily:
		return fmt.Sprintf("%04d-%02d-%02d", k.Year, k.Month, k.Day)
	case core.Weekly:
		return fmt.Sprintf("%04d-W%02d", k.Year, k.Week)
	default:
		return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
	}
}

// ParseLabel decodes a period label back into its bucket key.
func ParseLabel(label string, g core.Granularity) (BucketKey, error) {
	switch g {
	case core.Daily:
		d, err := core.ParseDate(label)
		if err != nil {
			return BucketKey{}, err
		}
		return KeyFor(d, core.Daily), nil
	case core.Weekly:
		year, week, ok := splitWeekLabel(label)
		if !ok {
			return BucketKey{}, fmt.Errorf("malformed weekly label %q", label)
		}
		return BucketKey{Granularity: core.Weekly, Year: year, Week: week}, nil
	default:
		parts := strings.SplitN(label, "-", 2)
		if len(parts) != 2 {
			return BucketKey{}, fmt.Errorf("malformed monthly label %q", label)
		}
		year, err1 := strconv.Atoi(parts[0])
		month, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || month < 1 || month > 12 {
			return BucketKey{}, fmt.Errorf("malformed monthly label %q", label)
		}
		return BucketKey{Granularity: core.Monthly, Year: year, Month: month}, nil
	}
}

func splitWeekLabel(label string) (year, week int, ok bool) {
	parts := strings.SplitN(label, "-W", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	year, err1 := strconv.Atoi(parts[0])
	week, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || week < 1 || week > 53 {
		return 0, 0, false
	}
	return year, week, true
}
