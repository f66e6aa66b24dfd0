package chart

import (
	"encoding/base64"
	"fmt"
	"strings"
	"testing"
)

func TestBarsFromPeriodTotalsSorted(t *testing.T) {
	totals := map[string]int64{
		"2024-03": 300,
		"2024-01": 100,
		"2024-02": 200,
	}

	bars := BarsFromPeriodTotals(totals)
	if len(bars) != 3 {
		t.Fatalf("got %d bars, want 3", len(bars))
	}
	for i, want := range []string{"2024-01", "2024-02", "2024-03"} {
		if bars[i].Label != want {
			t.Errorf("bars[%d].Label = %q, want %q", i, bars[i].Label, want)
		}
	}
}

func TestBarsFromPeriodTotalsTruncatesOldPeriods(t *testing.T) {
	totals := make(map[string]int64)
	for year := 2022; year <= 2024; year++ {
		for m := 1; m <= 12; m++ {
			totals[fmt.Sprintf("%04d-%02d", year, m)] = int64(m)
		}
	}

	bars := BarsFromPeriodTotals(totals)
	if len(bars) != maxBars {
		t.Fatalf("got %d bars, want %d", len(bars), maxBars)
	}
	// The oldest periods are the ones dropped.
	if bars[0].Label != "2023-01" {
		t.Errorf("first kept bar = %q, want 2023-01", bars[0].Label)
	}
	if bars[len(bars)-1].Label != "2024-12" {
		t.Errorf("last bar = %q, want 2024-12", bars[len(bars)-1].Label)
	}
}

func TestBarsFromCategoryTotalsOrderedBySpend(t *testing.T) {
	totals := map[string]int64{
		"Food":      4000,
		"Transport": 10000,
		"Rent":      4000,
	}

	bars := BarsFromCategoryTotals(totals)
	if len(bars) != 3 {
		t.Fatalf("got %d bars, want 3", len(bars))
	}
	// Biggest spender first; equal totals fall back to name order.
	for i, want := range []string{"Transport", "Food", "Rent"} {
		if bars[i].Label != want {
			t.Errorf("bars[%d].Label = %q, want %q", i, bars[i].Label, want)
		}
	}
}

func TestRenderBase64Empty(t *testing.T) {
	if got := RenderBase64("Spending", nil); got != "" {
		t.Errorf("empty series: got %q, want empty string", got)
	}
}

func TestRenderBase64DecodesToSVG(t *testing.T) {
	bars := []Bar{
		{Label: "2024-01", Cents: 1500},
		{Label: "2024-02", Cents: 700},
	}

	encoded := RenderBase64("Monthly Spending", bars)
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		t.Fatalf("output is not valid base64: %v", err)
	}
	svg := string(raw)
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("decoded output is not an SVG document: %.80s...", svg)
	}
	for _, want := range []string{"Monthly Spending", "2024-01", "2024-02"} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderAllZeroAmounts(t *testing.T) {
	bars := []Bar{{Label: "2024-01", Cents: 0}}
	if got := RenderBase64("", bars); got == "" {
		t.Error("zero amounts should still render a chart frame")
	}
}

func TestEscape(t *testing.T) {
	if got := escape(`a<b>&"c"`); got != "a&lt;b&gt;&amp;&quot;c&quot;" {
		t.Errorf("escape = %q", got)
	}
}
