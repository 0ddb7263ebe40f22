package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workforce-pulse/decision/fusion"
	"workforce-pulse/pkg/employment"
)

func event(company string, year, month int, count int64, industry string) employment.Event {
	return employment.NewEvent(
		time.Date(year, time.Month(month), 12, 0, 0, 0, 0, time.UTC),
		company, count, industry, "Remote",
	)
}

// Scenario: yearly layoffs {2021: 100, 2022: 500}, yearly hires
// {2021: 300, 2022: 200}, one laying-off company and one hiring company.
func downturnScenario() (reductions, hires []employment.Event, fused []employment.FusedRecord) {
	reductions = []employment.Event{
		event("Acme", 2021, 1, 100, "Software"),
		event("Acme", 2022, 1, 500, "Software"),
	}
	hires = []employment.Event{
		event("Globex", 2021, 4, 300, "Fintech"),
		event("Globex", 2022, 4, 200, "Fintech"),
	}
	fused = fusion.Fuse(reductions, hires)
	return reductions, hires, fused
}

func TestGenerateDownturnScenario(t *testing.T) {
	reductions, hires, fused := downturnScenario()

	insights := Generate(reductions, hires, fused)
	require.Len(t, insights, 7)

	assert.Equal(t, "🔍 **Peak Layoffs**: 2022 saw the highest layoffs with 500 jobs lost.", insights[0])
	assert.Equal(t, "📈 **Peak Hiring**: 2021 had the strongest hiring with 300 new positions.", insights[1])
	assert.Equal(t, "🏭 **Most Affected Industry**: Software experienced the highest layoffs (600 jobs).", insights[2])
	assert.Equal(t, "🏢 **Top Net Hirer**: Globex has the highest net employment growth (+500 positions).", insights[3])
	assert.Equal(t, "📅 **Seasonal Pattern**: January typically sees the highest layoff activity.", insights[4])
	assert.Equal(t, "⚠️ **Continued Challenges**: 2022 still shows net job losses (-300 jobs).", insights[5])
	assert.Equal(t, "📊 **Market Volatility**: Layoff patterns show higher volatility than hiring, indicating uncertain market conditions.", insights[6])
}

func TestGenerateEmptyInputs(t *testing.T) {
	assert.Empty(t, Generate(nil, nil, nil))
}

func TestRecoverySignalPositiveFraming(t *testing.T) {
	reductions := []employment.Event{event("Acme", 2022, 2, 500, "Software")}
	hires := []employment.Event{event("Acme", 2022, 2, 600, "Software")}
	fused := fusion.Fuse(reductions, hires)

	insights := Generate(reductions, hires, fused)
	assert.Contains(t, insights,
		"🔄 **Recovery Signal**: 2022 shows positive net employment growth (+100 jobs).")
}

func TestRecoverySignalZeroNetIsPositiveFramed(t *testing.T) {
	reductions := []employment.Event{event("Acme", 2022, 2, 500, "Software")}
	hires := []employment.Event{event("Acme", 2022, 2, 500, "Software")}

	insights := Generate(reductions, hires, fusion.Fuse(reductions, hires))
	assert.Contains(t, insights,
		"🔄 **Recovery Signal**: 2022 shows positive net employment growth (+0 jobs).")
}

func TestRecoverySignalMissingLayoffYearCountsAsZero(t *testing.T) {
	// The most recent hiring year has no layoff data at all; the missing
	// side is zero, not an error.
	hires := []employment.Event{event("Globex", 2024, 7, 120, "Fintech")}

	insights := Generate(nil, hires, fusion.Fuse(nil, hires))
	assert.Contains(t, insights,
		"🔄 **Recovery Signal**: 2024 shows positive net employment growth (+120 jobs).")
}

func TestVolatilitySkippedWhenBothSidesDegenerate(t *testing.T) {
	reductions := []employment.Event{event("Acme", 2022, 2, 500, "Software")}
	hires := []employment.Event{event("Acme", 2022, 2, 600, "Software")}

	insights := Generate(reductions, hires, fusion.Fuse(reductions, hires))
	for _, msg := range insights {
		assert.NotContains(t, msg, "volatility")
		assert.NotContains(t, msg, "volatile")
	}
}

func TestVolatilityComparesSampleStdDev(t *testing.T) {
	// Layoffs stdev ~282.8 vs hiring stdev ~70.7.
	reductions, hires, fused := downturnScenario()

	insights := Generate(reductions, hires, fused)
	assert.Contains(t, insights,
		"📊 **Market Volatility**: Layoff patterns show higher volatility than hiring, indicating uncertain market conditions.")
}

func TestPredictTrendsDirectionalMessages(t *testing.T) {
	// Layoffs grow 100 -> 500 (+400%), hires shrink 300 -> 200 (-33%).
	_, _, fused := downturnScenario()

	predictions := PredictTrends(fused)
	require.Len(t, predictions, 3)
	assert.Equal(t, "🔮 **Layoff Trend**: Increasing layoffs may indicate economic headwinds ahead.", predictions[0])
	assert.Equal(t, "🔮 **Hiring Trend**: Declining hiring activity suggests cautious market sentiment.", predictions[1])
	assert.Equal(t, "🚀 **Industry Momentum**: Fintech shows strongest recent employment growth.", predictions[2])
}

func TestPredictTrendsWithinBandEmitsNoDirection(t *testing.T) {
	fused := []employment.FusedRecord{
		{Company: "Acme", Year: 2021, Month: 1, Industry: "Software", Layoffs: 1000, Hires: 1000, NetChange: 0},
		{Company: "Acme", Year: 2022, Month: 1, Industry: "Software", Layoffs: 1050, Hires: 950, NetChange: -100},
	}

	predictions := PredictTrends(fused)
	require.Len(t, predictions, 1)
	assert.Equal(t, "🚀 **Industry Momentum**: Software shows strongest recent employment growth.", predictions[0])
}

func TestPredictTrendsRequiresTwoYears(t *testing.T) {
	fused := []employment.FusedRecord{
		{Company: "Acme", Year: 2022, Month: 1, Industry: "Software", Layoffs: 100, Hires: 500, NetChange: 400},
	}

	predictions := PredictTrends(fused)
	require.Len(t, predictions, 1)
	assert.Contains(t, predictions[0], "Industry Momentum")
}

func TestPredictTrendsEmptyTable(t *testing.T) {
	assert.Empty(t, PredictTrends(nil))
}

func TestIndustryMomentumWindowIsMostRecentTwoYears(t *testing.T) {
	// Old Software boom is outside the 2023-2024 window; Fintech wins.
	fused := []employment.FusedRecord{
		{Company: "Acme", Year: 2020, Month: 1, Industry: "Software", Hires: 9000, NetChange: 9000},
		{Company: "Acme", Year: 2023, Month: 1, Industry: "Software", Layoffs: 100, NetChange: -100},
		{Company: "Globex", Year: 2024, Month: 1, Industry: "Fintech", Hires: 50, NetChange: 50},
	}

	predictions := PredictTrends(fused)
	assert.Contains(t, predictions,
		"🚀 **Industry Momentum**: Fintech shows strongest recent employment growth.")
}

func TestRecommendationsAreFixed(t *testing.T) {
	recs := Recommendations()
	require.Len(t, recs, 4)
	for _, r := range recs {
		assert.True(t, len(r) > 0)
		assert.Contains(t, r, "💡")
	}

	// Callers get a copy; mutating it must not leak into later calls.
	recs[0] = "mutated"
	assert.NotEqual(t, "mutated", Recommendations()[0])
}
