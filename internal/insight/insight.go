package insight

import "expensetracker/internal/core"

// SummaryResult is the combined output of a summary query.
type SummaryResult struct {
	Summary          Summary
	Recommendations  []Recommendation
	SelectedCategory string
}

// SeriesResult is the output of a periodic query.
type SeriesResult struct {
	Data             map[string]int64
	SelectedCategory string
	Granularity      core.Granularity
}

// GetSummary filters the snapshot by owner and category, aggregates the
// filtered set (category breakdown over the owner's full set), and derives
// recommendations. Empty input is legitimate and yields zeroed output.
//
// An empty category defaults to the "all" sentinel; granularity defaults to
// monthly for the embedded period totals.
func GetSummary(records []core.ExpenseRecord, ownerID, category string, g core.Granularity) SummaryResult {
	if category == "" {
		category = CategoryAll
	}
	if g == "" {
		g = core.Monthly
	}

	owned := FilterOwner(records, ownerID)
	filtered := FilterCategory(owned, category)

	summary := Aggregate(filtered, owned, g)
	return SummaryResult{
		Summary:          summary,
		Recommendations:  Recommend(summary, category),
		SelectedCategory: category,
	}
}

// GetPeriodicSeries filters the snapshot by owner and category and sums the
// result into period buckets. Granularity defaults to monthly and category
// to "all" when unspecified.
func GetPeriodicSeries(records []core.ExpenseRecord, ownerID, category string, g core.Granularity) SeriesResult {
	if category == "" {
		category = CategoryAll
	}
	if g == "" {
		g = core.Monthly
	}

	filtered := FilterCategory(FilterOwner(records, ownerID), category)
	return SeriesResult{
		Data:             PeriodSeries(filtered, g),
		SelectedCategory: category,
		Granularity:      g,
	}
}
