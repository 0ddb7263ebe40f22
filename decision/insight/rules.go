package insight

import (
	"fmt"

	"github.com/shopspring/decimal"

	"workforce-pulse/decision/aggregation"
	"workforce-pulse/pkg/employment"
	"workforce-pulse/pkg/util"
)

// observationRules is the fixed battery behind Generate. Order matters:
// each rule appends at most one line, and the presentation layer shows them
// in this order.
var observationRules = []Rule{
	{Name: "peak_layoff_year", Evaluate: peakLayoffYear},
	{Name: "peak_hiring_year", Evaluate: peakHiringYear},
	{Name: "most_affected_industry", Evaluate: mostAffectedIndustry},
	{Name: "top_net_hirer", Evaluate: topNetHirer},
	{Name: "seasonal_pattern", Evaluate: seasonalPattern},
	{Name: "recovery_signal", Evaluate: recoverySignal},
	{Name: "market_volatility", Evaluate: marketVolatility},
}

var predictionRules = []Rule{
	{Name: "layoff_trend", Evaluate: layoffTrend},
	{Name: "hiring_trend", Evaluate: hiringTrend},
	{Name: "industry_momentum", Evaluate: industryMomentum},
}

var recommendations = []string{
	"💡 **For Job Seekers**: Focus on industries showing positive net employment growth and consider companies with strong hiring patterns.",
	"💡 **For Employers**: Monitor seasonal hiring patterns and consider counter-cyclical recruitment strategies during low-activity periods.",
	"💡 **For Investors**: Track employment trends as leading indicators of company performance and market health.",
	"💡 **For Policymakers**: Consider targeted support for industries experiencing significant layoffs while fostering growth in expanding sectors.",
}

func peakLayoffYear(in *Inputs) (string, bool) {
	year, total, ok := maxYear(in.YearlyLayoffs)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("🔍 **Peak Layoffs**: %d saw the highest layoffs with %s jobs lost.",
		year, util.FormatCount(total)), true
}

func peakHiringYear(in *Inputs) (string, bool) {
	year, total, ok := maxYear(in.YearlyHires)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("📈 **Peak Hiring**: %d had the strongest hiring with %s new positions.",
		year, util.FormatCount(total)), true
}

func mostAffectedIndustry(in *Inputs) (string, bool) {
	byIndustry := aggregation.GroupedSum(in.Reductions,
		func(e employment.Event) string { return e.Industry },
		func(e employment.Event) int64 { return e.Count })
	top, ok := topGroup(byIndustry)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("🏭 **Most Affected Industry**: %s experienced the highest layoffs (%s jobs).",
		top.Key, util.FormatCount(top.Total)), true
}

func topNetHirer(in *Inputs) (string, bool) {
	byCompany := aggregation.GroupedSum(in.Fused,
		func(f employment.FusedRecord) string { return f.Company },
		func(f employment.FusedRecord) int64 { return f.NetChange })
	top, ok := topGroup(byCompany)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("🏢 **Top Net Hirer**: %s has the highest net employment growth (+%s positions).",
		top.Key, util.FormatCount(top.Total)), true
}

func seasonalPattern(in *Inputs) (string, bool) {
	byMonth := aggregation.GroupedSum(in.Reductions,
		func(e employment.Event) int { return e.Month },
		func(e employment.Event) int64 { return e.Count })
	top, ok := topGroup(byMonth)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("📅 **Seasonal Pattern**: %s typically sees the highest layoff activity.",
		util.MonthName(top.Key)), true
}

// recoverySignal reports the net employment change of the most recent year
// present in the hiring data. A year absent from the layoffs side counts as
// zero layoffs, consistent with the fusion engine's zero-fill policy.
func recoverySignal(in *Inputs) (string, bool) {
	years := sortedYears(in.YearlyHires)
	if len(years) == 0 {
		return "", false
	}
	recent := years[len(years)-1]
	net := in.YearlyHires[recent] - in.YearlyLayoffs[recent]

	if net >= 0 {
		return fmt.Sprintf("🔄 **Recovery Signal**: %d shows positive net employment growth (+%s jobs).",
			recent, util.FormatCount(net)), true
	}
	return fmt.Sprintf("⚠️ **Continued Challenges**: %d still shows net job losses (%s jobs).",
		recent, util.FormatCount(net)), true
}

// marketVolatility compares the spread of yearly layoff totals against yearly
// hiring totals. With fewer than two years on both sides the deviations are
// undefined and the rule is skipped.
func marketVolatility(in *Inputs) (string, bool) {
	if len(in.YearlyLayoffs) < 2 && len(in.YearlyHires) < 2 {
		return "", false
	}
	layoffStdev := aggregation.SampleStdDev(yearlyFloats(in.YearlyLayoffs))
	hiringStdev := aggregation.SampleStdDev(yearlyFloats(in.YearlyHires))

	if layoffStdev > hiringStdev {
		return "📊 **Market Volatility**: Layoff patterns show higher volatility than hiring, indicating uncertain market conditions.", true
	}
	return "📊 **Market Stability**: Hiring patterns are more volatile than layoffs, suggesting dynamic growth opportunities.", true
}

// trendThreshold is the year-over-year growth band (±10%) inside which no
// directional prediction is emitted.
var trendThreshold = decimal.NewFromFloat(0.1)

type direction int

const (
	flat direction = iota
	rising
	falling
)

// classifyGrowth buckets the year-over-year change from prev to cur. A zero
// prior total makes percent change undefined; any growth from zero counts as
// rising, and zero-to-zero is flat.
func classifyGrowth(prev, cur int64) direction {
	if prev == 0 {
		if cur > 0 {
			return rising
		}
		return flat
	}
	growth := decimal.NewFromInt(cur - prev).Div(decimal.NewFromInt(prev))
	switch {
	case growth.GreaterThan(trendThreshold):
		return rising
	case growth.LessThan(trendThreshold.Neg()):
		return falling
	default:
		return flat
	}
}

// latestYearPair returns the totals of the two most recent years, or false
// when fewer than two distinct years are present.
func latestYearPair(totals map[int]int64) (prev, cur int64, ok bool) {
	years := sortedYears(totals)
	if len(years) < 2 {
		return 0, 0, false
	}
	return totals[years[len(years)-2]], totals[years[len(years)-1]], true
}

func layoffTrend(in *Inputs) (string, bool) {
	prev, cur, ok := latestYearPair(fusedYearlyTotals(in.Fused, layoffsOf))
	if !ok {
		return "", false
	}
	switch classifyGrowth(prev, cur) {
	case falling:
		return "🔮 **Layoff Trend**: Decreasing layoff activity suggests market stabilization.", true
	case rising:
		return "🔮 **Layoff Trend**: Increasing layoffs may indicate economic headwinds ahead.", true
	default:
		return "", false
	}
}

func hiringTrend(in *Inputs) (string, bool) {
	prev, cur, ok := latestYearPair(fusedYearlyTotals(in.Fused, hiresOf))
	if !ok {
		return "", false
	}
	switch classifyGrowth(prev, cur) {
	case rising:
		return "🔮 **Hiring Trend**: Strong hiring growth indicates expanding job market opportunities.", true
	case falling:
		return "🔮 **Hiring Trend**: Declining hiring activity suggests cautious market sentiment.", true
	default:
		return "", false
	}
}

// industryMomentum names the industry with the highest net change across the
// most recent two years of the fused table.
func industryMomentum(in *Inputs) (string, bool) {
	if len(in.Fused) == 0 {
		return "", false
	}
	latest := in.Fused[0].Year
	for _, f := range in.Fused {
		if f.Year > latest {
			latest = f.Year
		}
	}

	recent := make([]employment.FusedRecord, 0, len(in.Fused))
	for _, f := range in.Fused {
		if f.Year >= latest-1 {
			recent = append(recent, f)
		}
	}

	byIndustry := aggregation.GroupedSum(recent,
		func(f employment.FusedRecord) string { return f.Industry },
		func(f employment.FusedRecord) int64 { return f.NetChange })
	top, ok := topGroup(byIndustry)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("🚀 **Industry Momentum**: %s shows strongest recent employment growth.", top.Key), true
}

func layoffsOf(f employment.FusedRecord) int64 { return f.Layoffs }
func hiresOf(f employment.FusedRecord) int64   { return f.Hires }

func fusedYearlyTotals(fused []employment.FusedRecord, metric func(employment.FusedRecord) int64) map[int]int64 {
	totals := make(map[int]int64)
	for _, f := range fused {
		totals[f.Year] += metric(f)
	}
	return totals
}
