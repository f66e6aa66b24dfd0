package http

import (
	"net/http"

	"expensetracker/internal/chart"
	"expensetracker/internal/core"
	"expensetracker/internal/insight"
	applog "expensetracker/internal/log"
)

type summaryResponse struct {
	TotalSpending    float64                  `json:"total_spending"`
	AvgDaily         float64                  `json:"avg_daily"`
	MaxWeekly        float64                  `json:"max_weekly"`
	CategoryTotals   map[string]float64       `json:"category_totals"`
	PeriodTotals     map[string]float64       `json:"period_totals"`
	Recommendations  []insight.Recommendation `json:"recommendations"`
	SelectedCategory string                   `json:"selected_category"`
	Period           string                   `json:"period"`
	Plot             string                   `json:"plot,omitempty"`
}

type seriesResponse struct {
	Data             map[string]float64 `json:"data"`
	SelectedCategory string             `json:"selected_category"`
	Period           string             `json:"period"`
}

// handleSummary serves aggregate statistics, recommendations and a rendered
// chart for the caller's records. Results are cached per owner, category and
// granularity until the owner's next write.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request, ownerID string) {
	category := r.URL.Query().Get("category")
	granularity, err := core.ParseGranularity(r.URL.Query().Get("period"))
	if err != nil {
		if verr, ok := core.AsValidationError(err); ok {
			ValidationErrorResponse(verr).Write(w)
			return
		}
		BadRequestError("invalid period").Write(w)
		return
	}
	if category == "" {
		category = insight.CategoryAll
	}

	key := cacheKey(ownerID, category, granularity)
	if cached, ok := s.summaryCache.Get(key); ok {
		NewJSONResponse().Body(cached).Write(w)
		return
	}

	records, err := s.service.ListExpenses(r.Context(), ownerID)
	if err != nil {
		s.structLog.LogError(r.Context(), "Summary data load failed", err,
			applog.ComponentInsight, applog.OpRead,
			applog.NewFields().WithQuery(ownerID, category, string(granularity)))
		InternalServerError().Write(w)
		return
	}

	result := insight.GetSummary(records, ownerID, category, granularity)
	resp := buildSummaryResponse(result, granularity)

	s.summaryCache.Set(key, resp)
	NewJSONResponse().Body(resp).Write(w)
}

func buildSummaryResponse(result insight.SummaryResult, g core.Granularity) summaryResponse {
	sum := result.Summary

	resp := summaryResponse{
		TotalSpending:    core.RoundUnits(float64(sum.Total)),
		AvgDaily:         core.RoundUnits(sum.AvgDaily),
		MaxWeekly:        core.RoundUnits(float64(sum.MaxWeekly)),
		CategoryTotals:   roundTotals(sum.CategoryTotals),
		PeriodTotals:     roundTotals(sum.PeriodTotals),
		Recommendations:  result.Recommendations,
		SelectedCategory: result.SelectedCategory,
		Period:           string(g),
	}

	// Breakdown chart across categories; period trend when drilling into one.
	if result.SelectedCategory == insight.CategoryAll {
		resp.Plot = chart.RenderBase64("Spending by category", chart.BarsFromCategoryTotals(sum.CategoryTotals))
	} else {
		resp.Plot = chart.RenderBase64("Spending by period", chart.BarsFromPeriodTotals(sum.PeriodTotals))
	}

	return resp
}

// handleSeries serves the bucketed totals without the full summary wrapper.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request, ownerID string) {
	category := r.URL.Query().Get("category")
	granularity, err := core.ParseGranularity(r.URL.Query().Get("period"))
	if err != nil {
		if verr, ok := core.AsValidationError(err); ok {
			ValidationErrorResponse(verr).Write(w)
			return
		}
		BadRequestError("invalid period").Write(w)
		return
	}
	if category == "" {
		category = insight.CategoryAll
	}

	key := cacheKey(ownerID, category, granularity)
	if cached, ok := s.seriesCache.Get(key); ok {
		NewJSONResponse().Body(cached).Write(w)
		return
	}

	records, err := s.service.ListExpenses(r.Context(), ownerID)
	if err != nil {
		s.structLog.LogError(r.Context(), "Series data load failed", err,
			applog.ComponentInsight, applog.OpRead,
			applog.NewFields().WithQuery(ownerID, category, string(granularity)))
		InternalServerError().Write(w)
		return
	}

	result := insight.GetPeriodicSeries(records, ownerID, category, granularity)
	resp := seriesResponse{
		Data:             roundTotals(result.Data),
		SelectedCategory: result.SelectedCategory,
		Period:           string(result.Granularity),
	}

	s.seriesCache.Set(key, resp)
	NewJSONResponse().Body(resp).Write(w)
}

// roundTotals converts cent totals to currency units rounded to 2 decimals.
// Rounding happens only here, at the response boundary.
func roundTotals(cents map[string]int64) map[string]float64 {
	out := make(map[string]float64, len(cents))
	for k, v := range cents {
		out[k] = core.RoundUnits(float64(v))
	}
	return out
}
