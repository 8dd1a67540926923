package dashboard

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MetricCard is one summary row in the key metrics card.
type MetricCard struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Value string `json:"value"`
	Trend string `json:"trend"`
	Tone  string `json:"tone"`
}

// MetricTotals carries the raw aggregates behind the metric cards.
type MetricTotals struct {
	Cost        float64
	Clicks      int64
	Impressions int64
}

// AverageCPC returns cost per click, zero when there are no clicks.
func (t MetricTotals) AverageCPC() float64 {
	if t.Clicks <= 0 {
		return 0
	}
	return t.Cost / float64(t.Clicks)
}

// Totals sums cost, clicks and impressions.
func Totals(campaigns []Campaign) MetricTotals {
	var totals MetricTotals
	for _, c := range campaigns {
		totals.Cost += c.Cost
		totals.Clicks += c.Clicks
		totals.Impressions += c.Impressions
	}
	return totals
}

var numberPrinter = message.NewPrinter(language.English)

// SummarizeMetrics builds the metric cards keyed by metric id.
func SummarizeMetrics(campaigns []Campaign) map[string]MetricCard {
	totals := Totals(campaigns)
	return map[string]MetricCard{
		MetricCost: {
			ID:    MetricCost,
			Title: "Total Cost",
			Value: fmt.Sprintf("$%.0f", totals.Cost),
			Trend: "+2.5%",
			Tone:  "positive",
		},
		MetricClicks: {
			ID:    MetricClicks,
			Title: "Total Clicks",
			Value: numberPrinter.Sprintf("%d", totals.Clicks),
			Trend: "↗ 12%",
			Tone:  "info",
		},
		MetricImpressions: {
			ID:    MetricImpressions,
			Title: "Impressions",
			Value: fmt.Sprintf("%.1fk", float64(totals.Impressions)/1000),
			Trend: "- 5%",
			Tone:  "neutral",
		},
		MetricCPC: {
			ID:    MetricCPC,
			Title: "Avg CPC",
			Value: fmt.Sprintf("$%.2f", totals.AverageCPC()),
			Trend: "~ 0%",
			Tone:  "warning",
		},
	}
}

// OrderedMetrics returns the cards following the metric-rows order.
func OrderedMetrics(campaigns []Campaign, order []string) []MetricCard {
	cards := SummarizeMetrics(campaigns)
	out := make([]MetricCard, 0, len(order))
	for _, id := range order {
		if card, ok := cards[id]; ok {
			out = append(out, card)
		}
	}
	return out
}

func formatCount(n int64) string {
	return numberPrinter.Sprintf("%d", n)
}
