package insight

import (
	"fmt"
	"sort"
)

// Recommendation is a generated advisory message. Priority 1 is most urgent;
// sequences returned by Recommend are sorted by ascending priority.
type Recommendation struct {
	Message  string `json:"message"`
	Priority int    `json:"priority"`
}

// Share thresholds for the category rules, in percent.
const (
	categoryHighShare = 30
	categoryLowShare  = 10
	dominantShare     = 40
)

// Recommend applies the threshold rules over an aggregate summary. It is a
// pure function: no I/O, no errors, and the zero-denominator case yields 0%.
// All matching rules are emitted and the result is sorted by priority.
func Recommend(s Summary, selectedCategory string) []Recommendation {
	if s.Records == 0 {
		return []Recommendation{
			{Message: "Start tracking your expenses to get insights", Priority: 1},
		}
	}

	var recs []Recommendation
	if selectedCategory != CategoryAll {
		recs = append(recs, categoryRecommendation(s, selectedCategory))
	} else {
		var grandTotal int64
		topCategory := ""
		var topTotal int64
		for name, cents := range s.CategoryTotals {
			grandTotal += cents
			if cents > topTotal || (cents == topTotal && (topCategory == "" || name < topCategory)) {
				topCategory, topTotal = name, cents
			}
		}
		topPct := share(topTotal, grandTotal)
		if topPct > dominantShare {
			recs = append(recs, Recommendation{
				Message:  fmt.Sprintf("Your spending on %s is %.1f%% of total expenses. Consider reducing this category.", topCategory, topPct),
				Priority: 1,
			})
		}
		recs = append(recs,
			Recommendation{
				Message:  "Try to keep individual categories under 30% of your total budget.",
				Priority: 2,
			},
			Recommendation{
				Message:  "Consider setting up automatic savings for 20% of your income.",
				Priority: 3,
			},
		)
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Priority < recs[j].Priority })
	return recs
}

func categoryRecommendation(s Summary, category string) Recommendation {
	var grandTotal int64
	for _, cents := range s.CategoryTotals {
		grandTotal += cents
	}
	pct := share(s.CategoryTotals[category], grandTotal)

	switch {
	case pct > categoryHighShare:
		return Recommendation{
			Message:  fmt.Sprintf("Your %s spending is %.1f%% of total expenses. Consider reducing this category.", category, pct),
			Priority: 1,
		}
	case pct < categoryLowShare:
		return Recommendation{
			Message:  fmt.Sprintf("You're doing well controlling %s expenses (%.1f%% of total).", category, pct),
			Priority: 3,
		}
	default:
		return Recommendation{
			Message:  fmt.Sprintf("%s spending is %.1f%% of your total budget.", category, pct),
			Priority: 2,
		}
	}
}

// share returns part/whole as a percentage, defined as 0 when whole is 0.
func share(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
