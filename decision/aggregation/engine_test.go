package aggregation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workforce-pulse/pkg/employment"
)

func event(company string, year, month int, count int64, industry string) employment.Event {
	return employment.NewEvent(
		time.Date(year, time.Month(month), 10, 0, 0, 0, 0, time.UTC),
		company, count, industry, "Remote",
	)
}

func companyKey(e employment.Event) string { return e.Company }
func countOf(e employment.Event) int64     { return e.Count }

func TestGroupedSumFirstSeenOrder(t *testing.T) {
	events := []employment.Event{
		event("B", 2022, 1, 10, "X"),
		event("A", 2022, 1, 5, "X"),
		event("B", 2022, 2, 7, "X"),
	}

	groups := GroupedSum(events, companyKey, countOf)
	require.Len(t, groups, 2)
	assert.Equal(t, Group[string]{Key: "B", Total: 17}, groups[0])
	assert.Equal(t, Group[string]{Key: "A", Total: 5}, groups[1])
}

func TestFirstByKeepsEarliestValue(t *testing.T) {
	events := []employment.Event{
		event("A", 2022, 1, 5, "Software"),
		event("A", 2022, 2, 5, "Hardware"),
		event("B", 2022, 1, 5, "Fintech"),
	}

	got := FirstBy(events, companyKey, func(e employment.Event) string { return e.Industry })
	assert.Equal(t, map[string]string{"A": "Software", "B": "Fintech"}, got)
}

func TestTopNBoundsAndDominance(t *testing.T) {
	groups := []Group[string]{
		{Key: "A", Total: 10},
		{Key: "B", Total: 40},
		{Key: "C", Total: 25},
		{Key: "D", Total: 40},
	}

	top := TopN(groups, 2)
	require.Len(t, top, 2)
	// Every returned total dominates every excluded total.
	for _, kept := range top {
		assert.GreaterOrEqual(t, kept.Total, int64(25))
	}
	// Ties keep input order: B before D.
	assert.Equal(t, "B", top[0].Key)
	assert.Equal(t, "D", top[1].Key)

	assert.Len(t, TopN(groups, 10), 4)
	assert.Empty(t, TopN(groups, 0))

	// Input order untouched.
	assert.Equal(t, "A", groups[0].Key)
}

func TestSummarize(t *testing.T) {
	reductions := []employment.Event{
		event("A", 2022, 1, 100, "Software"),
		event("B", 2022, 2, 300, "Hardware"),
		event("A", 2023, 1, 50, "Software"),
	}
	hires := []employment.Event{
		event("C", 2021, 6, 500, "Fintech"),
		event("A", 2022, 1, 40, "Software"),
	}

	bundle := Summarize(reductions, hires, nil)

	assert.Equal(t, int64(450), bundle.TotalLayoffs)
	assert.Equal(t, int64(540), bundle.TotalHires)
	assert.Equal(t, int64(90), bundle.NetEmploymentChange)

	require.NotEmpty(t, bundle.TopLayoffCompanies)
	assert.Equal(t, "B", bundle.TopLayoffCompanies[0].Key)
	assert.Equal(t, int64(300), bundle.TopLayoffCompanies[0].Total)

	require.NotEmpty(t, bundle.TopHiringCompanies)
	assert.Equal(t, "C", bundle.TopHiringCompanies[0].Key)

	// Monthly series sorted by (year, month).
	require.Len(t, bundle.MonthlyLayoffs, 3)
	assert.Equal(t, MonthTotal{Year: 2022, Month: 1, Total: 100}, bundle.MonthlyLayoffs[0])
	assert.Equal(t, MonthTotal{Year: 2022, Month: 2, Total: 300}, bundle.MonthlyLayoffs[1])
	assert.Equal(t, MonthTotal{Year: 2023, Month: 1, Total: 50}, bundle.MonthlyLayoffs[2])

	// Industry impact descending by layoffs.
	require.Len(t, bundle.IndustryImpact, 2)
	assert.Equal(t, "Hardware", bundle.IndustryImpact[0].Key)
	assert.Equal(t, int64(300), bundle.IndustryImpact[0].Total)
	assert.Equal(t, "Software", bundle.IndustryImpact[1].Key)
}

func TestSummarizeTopListsCapAtTen(t *testing.T) {
	var reductions []employment.Event
	for i := 0; i < 15; i++ {
		reductions = append(reductions, event(string(rune('A'+i)), 2022, 1, int64(i+1), "X"))
	}

	bundle := Summarize(reductions, nil, nil)
	assert.Len(t, bundle.TopLayoffCompanies, 10)
	assert.Empty(t, bundle.TopHiringCompanies)
	assert.Equal(t, int64(0), bundle.TotalHires)
}

func TestIndustryTrendsZeroFill(t *testing.T) {
	reductions := []employment.Event{event("A", 2022, 1, 100, "Software")}
	hires := []employment.Event{
		event("B", 2022, 3, 60, "Software"),
		event("C", 2023, 3, 80, "Fintech"),
	}

	trends := IndustryTrends(reductions, hires)
	require.Len(t, trends, 2)

	// Sorted by (industry, year): Fintech 2023, Software 2022.
	assert.Equal(t, IndustryTrend{Industry: "Fintech", Year: 2023, Layoffs: 0, Hires: 80, NetChange: 80}, trends[0])
	assert.Equal(t, IndustryTrend{Industry: "Software", Year: 2022, Layoffs: 100, Hires: 60, NetChange: -40}, trends[1])
}

func TestSampleStdDev(t *testing.T) {
	assert.Equal(t, 0.0, SampleStdDev(nil))
	assert.Equal(t, 0.0, SampleStdDev([]float64{42}))

	// {100, 500}: mean 300, sample variance 80000.
	assert.InDelta(t, 282.8427, SampleStdDev([]float64{100, 500}), 0.001)
	assert.InDelta(t, 70.7107, SampleStdDev([]float64{300, 200}), 0.001)
}
