// Package aggregation computes grouped sums and descriptive statistics over
// event and fused tables. All operations are pure functions of their inputs;
// nothing is cached between calls.
package aggregation

import (
	"math"
	"sort"

	"workforce-pulse/pkg/employment"
)

// Group is one output row of a grouped sum: the group key and the summed
// metric.
type Group[K comparable] struct {
	Key   K     `json:"key"`
	Total int64 `json:"total"`
}

// GroupedSum groups rows by key and sums the metric per group. Groups appear
// in first-seen input order, which downstream tie-breaking depends on.
func GroupedSum[R any, K comparable](rows []R, key func(R) K, metric func(R) int64) []Group[K] {
	index := make(map[K]int, len(rows))
	groups := make([]Group[K], 0)
	for _, r := range rows {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group[K]{Key: k})
		}
		groups[i].Total += metric(r)
	}
	return groups
}

// FirstBy returns, per group key, the value of the first row encountered in
// input order. This is the representative-value policy used for non-summed
// fields such as industry and location: when a group holds conflicting
// values, the earliest row wins.
func FirstBy[R any, K comparable, V any](rows []R, key func(R) K, value func(R) V) map[K]V {
	out := make(map[K]V)
	for _, r := range rows {
		k := key(r)
		if _, ok := out[k]; !ok {
			out[k] = value(r)
		}
	}
	return out
}

// TopN returns the n groups with the highest totals, descending. Ties keep
// their relative input order (stable sort). The input slice is not modified.
func TopN[K comparable](groups []Group[K], n int) []Group[K] {
	sorted := make([]Group[K], len(groups))
	copy(sorted, groups)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Total > sorted[j].Total
	})
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// MonthTotal is one point of a monthly time series.
type MonthTotal struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Total int64 `json:"total"`
}

// SummaryBundle is the descriptive-statistics view consumed by the
// presentation layer.
type SummaryBundle struct {
	TotalLayoffs        int64 `json:"total_layoffs"`
	TotalHires          int64 `json:"total_hires"`
	NetEmploymentChange int64 `json:"net_employment_change"`

	TopLayoffCompanies []Group[string] `json:"top_layoff_companies"`
	TopHiringCompanies []Group[string] `json:"top_hiring_companies"`

	MonthlyLayoffs []MonthTotal `json:"monthly_layoffs"`
	MonthlyHires   []MonthTotal `json:"monthly_hires"`

	// IndustryImpact ranks industries by total layoffs, descending.
	IndustryImpact []Group[string] `json:"industry_impact"`
}

// Summarize computes the key summary statistics over the raw event streams.
// The fused table is accepted for interface symmetry with the insight engine
// but the bundle is derived from the raw sides alone.
func Summarize(reductions, hires []employment.Event, _ []employment.FusedRecord) *SummaryBundle {
	bundle := &SummaryBundle{
		TopLayoffCompanies: TopN(companyTotals(reductions), 10),
		TopHiringCompanies: TopN(companyTotals(hires), 10),
		MonthlyLayoffs:     monthlySeries(reductions),
		MonthlyHires:       monthlySeries(hires),
	}

	for _, e := range reductions {
		bundle.TotalLayoffs += e.Count
	}
	for _, e := range hires {
		bundle.TotalHires += e.Count
	}
	bundle.NetEmploymentChange = bundle.TotalHires - bundle.TotalLayoffs

	impact := GroupedSum(reductions,
		func(e employment.Event) string { return e.Industry },
		func(e employment.Event) int64 { return e.Count })
	bundle.IndustryImpact = TopN(impact, len(impact))

	return bundle
}

func companyTotals(events []employment.Event) []Group[string] {
	return GroupedSum(events,
		func(e employment.Event) string { return e.Company },
		func(e employment.Event) int64 { return e.Count })
}

func monthlySeries(events []employment.Event) []MonthTotal {
	type ym struct{ year, month int }
	groups := GroupedSum(events,
		func(e employment.Event) ym { return ym{e.Year, e.Month} },
		func(e employment.Event) int64 { return e.Count })

	series := make([]MonthTotal, 0, len(groups))
	for _, g := range groups {
		series = append(series, MonthTotal{Year: g.Key.year, Month: g.Key.month, Total: g.Total})
	}
	sort.Slice(series, func(i, j int) bool {
		if series[i].Year != series[j].Year {
			return series[i].Year < series[j].Year
		}
		return series[i].Month < series[j].Month
	})
	return series
}

// IndustryTrend is one (industry, year) cell of the per-industry trend view.
type IndustryTrend struct {
	Industry  string `json:"industry"`
	Year      int    `json:"year"`
	Layoffs   int64  `json:"layoffs"`
	Hires     int64  `json:"hires"`
	NetChange int64  `json:"net_change"`
}

// IndustryTrends outer-joins per-(industry, year) layoff and hire sums. A
// side with no events for a cell contributes zero. Output is sorted by
// (industry, year).
func IndustryTrends(reductions, hires []employment.Event) []IndustryTrend {
	type cell struct {
		industry string
		year     int
	}

	cells := make(map[cell]*IndustryTrend)
	order := make([]cell, 0)

	at := func(c cell) *IndustryTrend {
		t, ok := cells[c]
		if !ok {
			t = &IndustryTrend{Industry: c.industry, Year: c.year}
			cells[c] = t
			order = append(order, c)
		}
		return t
	}

	for _, e := range reductions {
		at(cell{e.Industry, e.Year}).Layoffs += e.Count
	}
	for _, e := range hires {
		at(cell{e.Industry, e.Year}).Hires += e.Count
	}

	out := make([]IndustryTrend, 0, len(order))
	for _, c := range order {
		t := cells[c]
		t.NetChange = t.Hires - t.Layoffs
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Industry != out[j].Industry {
			return out[i].Industry < out[j].Industry
		}
		return out[i].Year < out[j].Year
	})
	return out
}

// SampleStdDev returns the sample standard deviation (n-1 denominator) of
// values, or 0 when fewer than two values are present.
func SampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
