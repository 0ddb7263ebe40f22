// Package insight turns aggregated employment statistics into short
// narrative strings: observations over the historical data, directional
// trend predictions, and fixed advisory recommendations.
package insight

import (
	"sort"

	"workforce-pulse/decision/aggregation"
	"workforce-pulse/pkg/employment"
)

// Inputs carries the event streams, the fused table, and the yearly
// aggregates every rule reads. Build it once per evaluation with NewInputs.
type Inputs struct {
	Reductions []employment.Event
	Hires      []employment.Event
	Fused      []employment.FusedRecord

	// Yearly totals per side, derived from the raw event streams.
	YearlyLayoffs map[int]int64
	YearlyHires   map[int]int64
}

// NewInputs precomputes the yearly aggregates shared across rules.
func NewInputs(reductions, hires []employment.Event, fused []employment.FusedRecord) *Inputs {
	return &Inputs{
		Reductions:    reductions,
		Hires:         hires,
		Fused:         fused,
		YearlyLayoffs: yearlyTotals(reductions),
		YearlyHires:   yearlyTotals(hires),
	}
}

// Rule is one independent observation. Evaluate returns the narrative string
// and whether the rule applies to the given inputs; rules that do not apply
// emit nothing rather than failing.
type Rule struct {
	Name     string
	Evaluate func(*Inputs) (string, bool)
}

// Generate runs the observation rules in their fixed order and collects the
// strings of every rule that applied.
func Generate(reductions, hires []employment.Event, fused []employment.FusedRecord) []string {
	in := NewInputs(reductions, hires, fused)

	insights := make([]string, 0, len(observationRules))
	for _, rule := range observationRules {
		if msg, ok := rule.Evaluate(in); ok {
			insights = append(insights, msg)
		}
	}
	return insights
}

// PredictTrends runs the prediction rules over the fused table.
func PredictTrends(fused []employment.FusedRecord) []string {
	in := NewInputs(nil, nil, fused)

	predictions := make([]string, 0, len(predictionRules))
	for _, rule := range predictionRules {
		if msg, ok := rule.Evaluate(in); ok {
			predictions = append(predictions, msg)
		}
	}
	return predictions
}

// Recommendations returns the fixed, input-independent advisory strings.
func Recommendations() []string {
	out := make([]string, len(recommendations))
	copy(out, recommendations)
	return out
}

func yearlyTotals(events []employment.Event) map[int]int64 {
	totals := make(map[int]int64)
	for _, e := range events {
		totals[e.Year] += e.Count
	}
	return totals
}

// maxYear returns the year with the highest total. Ties resolve to the
// earliest year so the result does not depend on map iteration order.
func maxYear(totals map[int]int64) (int, int64, bool) {
	if len(totals) == 0 {
		return 0, 0, false
	}
	years := sortedYears(totals)
	best := years[0]
	for _, y := range years[1:] {
		if totals[y] > totals[best] {
			best = y
		}
	}
	return best, totals[best], true
}

func sortedYears(totals map[int]int64) []int {
	years := make([]int, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

func yearlyFloats(totals map[int]int64) []float64 {
	years := sortedYears(totals)
	out := make([]float64, 0, len(years))
	for _, y := range years {
		out = append(out, float64(totals[y]))
	}
	return out
}

// topGroup returns the first-ranked group of a grouped sum, using the stable
// descending order of aggregation.TopN.
func topGroup[K comparable](groups []aggregation.Group[K]) (aggregation.Group[K], bool) {
	top := aggregation.TopN(groups, 1)
	if len(top) == 0 {
		var zero aggregation.Group[K]
		return zero, false
	}
	return top[0], true
}
