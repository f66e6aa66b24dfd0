package insight

import "expensetracker/internal/core"

// Summary is the aggregate over one owner's record set.
//
// Total, AvgDaily and MaxWeekly are computed over the category-filtered set;
// CategoryTotals always covers the owner's full record set so the breakdown
// reconciles with the grand total even when the caller is drilling into a
// single category. All amounts are cents; AvgDaily is fractional cents and is
// rounded to 2 decimal units only at the response boundary.
type Summary struct {
	Total          int64
	AvgDaily       float64
	MaxWeekly      int64
	CategoryTotals map[string]int64
	PeriodTotals   map[string]int64
	Records        int // size of the owner's full record set
}

// Aggregate reduces a filtered record set (plus the owner's unfiltered set
// for the category breakdown) into a Summary. Empty input yields zeroed
// fields and empty maps, never an error.
func Aggregate(filtered, owned []core.ExpenseRecord, g core.Granularity) Summary {
	s := Summary{
		CategoryTotals: make(map[string]int64),
		PeriodTotals:   make(map[string]int64),
		Records:        len(owned),
	}

	perDay := make(map[string]int64)
	perWeek := make(map[BucketKey]int64)
	for _, r := range filtered {
		s.Total += r.Amount.Cents
		perDay[r.Date.String()] += r.Amount.Cents
		perWeek[KeyFor(r.Date, core.Weekly)] += r.Amount.Cents
		s.PeriodTotals[KeyFor(r.Date, g).Label()] += r.Amount.Cents
	}

	// Mean of per-day sums: a day with three records is one data point.
	if len(perDay) > 0 {
		var daySum int64
		for _, v := range perDay {
			daySum += v
		}
		s.AvgDaily = float64(daySum) / float64(len(perDay))
	}

	for _, v := range perWeek {
		if v > s.MaxWeekly {
			s.MaxWeekly = v
		}
	}

	for _, r := range owned {
		s.CategoryTotals[r.Category] += r.Amount.Cents
	}

	return s
}

// PeriodSeries sums a record set into period buckets at the given
// granularity. Buckets with no records are absent from the result.
func PeriodSeries(records []core.ExpenseRecord, g core.Granularity) map[string]int64 {
	out := make(map[string]int64)
	for _, r := range records {
		out[KeyFor(r.Date, g).Label()] += r.Amount.Cents
	}
	return out
}
