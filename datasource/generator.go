// Package datasource produces the sample employment datasets the decision
// engines consume. Generation is seeded and deterministic: the same seed
// always yields the same two event streams. Callers construct a Dataset once
// and pass it down explicitly; there is no process-wide cache.
package datasource

import (
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"workforce-pulse/pkg/employment"
)

// DefaultSeed is the seed used when none is configured.
const DefaultSeed int64 = 42

const (
	reductionEvents = 500
	hiringEvents    = 600
)

var companies = []string{
	"Meta", "Google", "Amazon", "Microsoft", "Apple", "Netflix", "Tesla",
	"Twitter", "Uber", "Airbnb", "Spotify", "Zoom", "Salesforce", "Adobe",
	"Intel", "NVIDIA", "PayPal", "Square", "Dropbox", "Slack",
}

var industries = []string{
	"Social Media", "Search/Cloud", "E-commerce", "Software", "Hardware",
	"Streaming", "Automotive", "Transportation", "Travel", "Music",
	"Video Conferencing", "CRM", "Design", "Semiconductors", "Fintech",
}

var locations = []string{
	"San Francisco", "Seattle", "New York", "Austin", "Boston",
	"Los Angeles", "Chicago", "Denver", "Atlanta", "Remote",
}

// Dataset holds the two source event streams. Treat it as read-only after
// construction.
type Dataset struct {
	Reductions []employment.Event
	Hires      []employment.Event
}

// Generate builds the sample dataset for a seed: 500 reduction events and
// 600 hiring events spread over 2020 through 2024, with heavier layoffs in
// the 2022-2023 downturn and heavier hiring in the 2020-2021 boom.
func Generate(seed int64) *Dataset {
	rng := rand.New(rand.NewSource(seed))

	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	spanDays := int(end.Sub(start).Hours() / 24)

	ds := &Dataset{
		Reductions: make([]employment.Event, 0, reductionEvents),
		Hires:      make([]employment.Event, 0, hiringEvents),
	}

	for i := 0; i < reductionEvents; i++ {
		date := start.AddDate(0, 0, rng.Intn(spanDays+1))

		var count int64
		switch date.Year() {
		case 2022, 2023:
			count = randBetween(rng, 50, 2000)
		default:
			count = randBetween(rng, 10, 500)
		}

		ds.Reductions = append(ds.Reductions, newEvent(rng, date, count))
	}

	for i := 0; i < hiringEvents; i++ {
		date := start.AddDate(0, 0, rng.Intn(spanDays+1))

		var count int64
		switch date.Year() {
		case 2020, 2021:
			count = randBetween(rng, 100, 3000)
		case 2022, 2023:
			count = randBetween(rng, 20, 800)
		default:
			count = randBetween(rng, 50, 1500)
		}

		ds.Hires = append(ds.Hires, newEvent(rng, date, count))
	}

	return ds
}

func newEvent(rng *rand.Rand, date time.Time, count int64) employment.Event {
	e := employment.NewEvent(
		date,
		companies[rng.Intn(len(companies))],
		count,
		industries[rng.Intn(len(industries))],
		locations[rng.Intn(len(locations))],
	)
	// IDs come from the seeded rng so the whole stream is reproducible.
	e.ID = uuid.Must(uuid.NewRandomFromReader(rng))
	return e
}

func randBetween(rng *rand.Rand, lo, hi int64) int64 {
	return lo + rng.Int63n(hi-lo+1)
}

// Companies returns the sorted union of company names present in either
// stream.
func (d *Dataset) Companies() []string {
	return sortedUnion(d.Reductions, d.Hires, func(e employment.Event) string { return e.Company })
}

// Industries returns the sorted union of industries present in either stream.
func (d *Dataset) Industries() []string {
	return sortedUnion(d.Reductions, d.Hires, func(e employment.Event) string { return e.Industry })
}

// Years returns the sorted set of years present in either stream.
func (d *Dataset) Years() []int {
	seen := make(map[int]struct{})
	for _, e := range d.Reductions {
		seen[e.Year] = struct{}{}
	}
	for _, e := range d.Hires {
		seen[e.Year] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// DateRange returns the earliest and latest event dates across both streams.
// The second return is false when both streams are empty.
func (d *Dataset) DateRange() (min, max time.Time, ok bool) {
	for _, e := range append(append([]employment.Event{}, d.Reductions...), d.Hires...) {
		if !ok || e.Date.Before(min) {
			min = e.Date
		}
		if !ok || e.Date.After(max) {
			max = e.Date
		}
		ok = true
	}
	return min, max, ok
}

func sortedUnion(a, b []employment.Event, field func(employment.Event) string) []string {
	seen := make(map[string]struct{})
	for _, e := range a {
		seen[field(e)] = struct{}{}
	}
	for _, e := range b {
		seen[field(e)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
