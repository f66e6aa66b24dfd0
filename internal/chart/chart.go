// Package chart renders period totals as a self-contained SVG bar chart.
// The output is base64 encoded so API responses can embed it directly in a
// data URI.
package chart

import (
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"expensetracker/internal/core"
)

const (
	chartWidth   = 640
	chartHeight  = 320
	marginLeft   = 56
	marginRight  = 16
	marginTop    = 24
	marginBottom = 48
	barGap       = 8
	maxBars      = 24
)

const barColor = "#4F46E5"

// Bar is one labeled column, ordered by its period label.
type Bar struct {
	Label string
	Cents int64
}

// BarsFromPeriodTotals sorts a period-total map into chronological bars.
// Period labels are built so lexical order equals chronological order.
func BarsFromPeriodTotals(totals map[string]int64) []Bar {
	bars := make([]Bar, 0, len(totals))
	for label, cents := range totals {
		bars = append(bars, Bar{Label: label, Cents: cents})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Label < bars[j].Label })
	if len(bars) > maxBars {
		bars = bars[len(bars)-maxBars:]
	}
	return bars
}

// BarsFromCategoryTotals sorts a category-total map into bars, biggest
// spender first. Ties break on the category name so output is deterministic.
func BarsFromCategoryTotals(totals map[string]int64) []Bar {
	bars := make([]Bar, 0, len(totals))
	for label, cents := range totals {
		bars = append(bars, Bar{Label: label, Cents: cents})
	}
	sort.Slice(bars, func(i, j int) bool {
		if bars[i].Cents != bars[j].Cents {
			return bars[i].Cents > bars[j].Cents
		}
		return bars[i].Label < bars[j].Label
	})
	if len(bars) > maxBars {
		bars = bars[:maxBars]
	}
	return bars
}

// RenderBase64 renders the bars as an SVG document and returns it base64
// encoded. An empty series yields an empty string rather than an empty chart.
func RenderBase64(title string, bars []Bar) string {
	if len(bars) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(renderSVG(title, bars)))
}

func renderSVG(title string, bars []Bar) string {
	var maxCents int64
	for _, b := range bars {
		if b.Cents > maxCents {
			maxCents = b.Cents
		}
	}
	if maxCents == 0 {
		maxCents = 1
	}

	plotW := chartWidth - marginLeft - marginRight
	plotH := chartHeight - marginTop - marginBottom
	barW := (plotW - barGap*(len(bars)-1)) / len(bars)
	if barW < 2 {
		barW = 2
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		chartWidth, chartHeight, chartWidth, chartHeight)
	sb.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>`)
	if title != "" {
		fmt.Fprintf(&sb, `<text x="%d" y="16" font-family="sans-serif" font-size="13" fill="#111827">%s</text>`,
			marginLeft, escape(title))
	}

	// Axis lines.
	fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#9CA3AF"/>`,
		marginLeft, marginTop, marginLeft, marginTop+plotH)
	fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#9CA3AF"/>`,
		marginLeft, marginTop+plotH, marginLeft+plotW, marginTop+plotH)

	// Max-value tick on the y axis.
	fmt.Fprintf(&sb, `<text x="%d" y="%d" font-family="sans-serif" font-size="10" fill="#6B7280" text-anchor="end">%.2f</text>`,
		marginLeft-4, marginTop+8, core.Money{Cents: maxCents}.Units())

	for i, b := range bars {
		h := int(float64(plotH) * float64(b.Cents) / float64(maxCents))
		x := marginLeft + i*(barW+barGap)
		y := marginTop + plotH - h
		fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`,
			x, y, barW, h, barColor)
		fmt.Fprintf(&sb, `<text x="%d" y="%d" font-family="sans-serif" font-size="9" fill="#374151" text-anchor="middle">%s</text>`,
			x+barW/2, marginTop+plotH+14, escape(b.Label))
	}

	sb.WriteString(`</svg>`)
	return sb.String()
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
