// Package fusion reconciles the reduction and hiring event streams into one
// monthly per-company table.
//
// Each side is first pre-aggregated by (company, year, month); the two
// aggregates are then full-outer-joined so every key present in either side
// produces exactly one fused row. A key missing from one side contributes a
// zero count for that side's metric: absence of data is treated the same as
// zero activity, and consumers of the fused table depend on that policy.
package fusion

import (
	"sort"

	"github.com/shopspring/decimal"

	"workforce-pulse/pkg/employment"
)

// sideAggregate is one side's pre-aggregated view of a company-month.
type sideAggregate struct {
	total    int64
	industry string
	location string
}

// Fuse joins the two event streams into the fused monthly table.
//
// Industry and location resolve to the reduction-side value when that side
// has the key, falling back to the hiring side. Within a side, the first
// record in input order supplies the representative industry/location for
// its group; if a company's industry varies within a month only that first
// value survives. Output rows are sorted by (company, year, month).
//
// Empty inputs are valid: a missing side yields zero-filled counterparts,
// and two empty inputs yield an empty table.
func Fuse(reductions, hires []employment.Event) []employment.FusedRecord {
	left, leftKeys := preAggregate(reductions)
	right, rightKeys := preAggregate(hires)

	keys := make([]employment.Key, 0, len(leftKeys)+len(rightKeys))
	keys = append(keys, leftKeys...)
	for _, k := range rightKeys {
		if _, dup := left[k]; !dup {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	fused := make([]employment.FusedRecord, 0, len(keys))
	for _, k := range keys {
		l, hasL := left[k]
		r, hasR := right[k]

		rec := employment.FusedRecord{
			Company: k.Company,
			Year:    k.Year,
			Month:   k.Month,
			Date:    employment.MonthStart(k.Year, k.Month),
		}
		if hasL {
			rec.Layoffs = l.total
			rec.Industry = l.industry
			rec.Location = l.location
		}
		if hasR {
			rec.Hires = r.total
			if !hasL {
				rec.Industry = r.industry
				rec.Location = r.location
			}
		}

		rec.NetChange = rec.Hires - rec.Layoffs
		rec.EmploymentRatio = decimal.NewFromInt(rec.Hires).
			Div(decimal.NewFromInt(rec.Layoffs + 1))

		fused = append(fused, rec)
	}
	return fused
}

// preAggregate sums event counts per (company, year, month) and records the
// first-seen industry/location per group. Returned keys preserve first-seen
// input order.
func preAggregate(events []employment.Event) (map[employment.Key]sideAggregate, []employment.Key) {
	agg := make(map[employment.Key]sideAggregate, len(events))
	keys := make([]employment.Key, 0, len(events))

	for _, e := range events {
		k := employment.Key{Company: e.Company, Year: e.Year, Month: e.Month}
		side, ok := agg[k]
		if !ok {
			side = sideAggregate{industry: e.Industry, location: e.Location}
			keys = append(keys, k)
		}
		side.total += e.Count
		agg[k] = side
	}
	return agg, keys
}

// Keys returns the (company, year, month) key of every fused row, in row
// order.
func Keys(fused []employment.FusedRecord) []employment.Key {
	keys := make([]employment.Key, 0, len(fused))
	for _, f := range fused {
		keys = append(keys, employment.Key{Company: f.Company, Year: f.Year, Month: f.Month})
	}
	return keys
}
