package datasource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workforce-pulse/pkg/employment"
)

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	a := Generate(7)
	b := Generate(7)

	require.Equal(t, a.Reductions, b.Reductions)
	require.Equal(t, a.Hires, b.Hires)
}

func TestGenerateDiffersAcrossSeeds(t *testing.T) {
	a := Generate(1)
	b := Generate(2)
	assert.NotEqual(t, a.Reductions, b.Reductions)
}

func TestGenerateEventCounts(t *testing.T) {
	ds := Generate(DefaultSeed)
	assert.Len(t, ds.Reductions, 500)
	assert.Len(t, ds.Hires, 600)
}

func TestGeneratedEventsAreWellFormed(t *testing.T) {
	ds := Generate(DefaultSeed)

	checkEvent := func(e employment.Event) {
		assert.GreaterOrEqual(t, e.Year, 2020)
		assert.LessOrEqual(t, e.Year, 2024)
		assert.GreaterOrEqual(t, e.Month, 1)
		assert.LessOrEqual(t, e.Month, 12)
		assert.Equal(t, e.Date.Year(), e.Year)
		assert.Equal(t, int(e.Date.Month()), e.Month)
		assert.Equal(t, employment.QuarterOf(e.Date.Month()), e.Quarter)
		assert.Contains(t, companies, e.Company)
		assert.Contains(t, industries, e.Industry)
		assert.Contains(t, locations, e.Location)
		assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", e.ID.String())
	}

	for _, e := range ds.Reductions {
		checkEvent(e)
		switch e.Year {
		case 2022, 2023:
			assert.GreaterOrEqual(t, e.Count, int64(50))
			assert.LessOrEqual(t, e.Count, int64(2000))
		default:
			assert.GreaterOrEqual(t, e.Count, int64(10))
			assert.LessOrEqual(t, e.Count, int64(500))
		}
	}

	for _, e := range ds.Hires {
		checkEvent(e)
		switch e.Year {
		case 2020, 2021:
			assert.GreaterOrEqual(t, e.Count, int64(100))
			assert.LessOrEqual(t, e.Count, int64(3000))
		case 2022, 2023:
			assert.GreaterOrEqual(t, e.Count, int64(20))
			assert.LessOrEqual(t, e.Count, int64(800))
		default:
			assert.GreaterOrEqual(t, e.Count, int64(50))
			assert.LessOrEqual(t, e.Count, int64(1500))
		}
	}
}

func TestDatasetOptionHelpers(t *testing.T) {
	ds := &Dataset{
		Reductions: []employment.Event{
			employment.NewEvent(time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC), "Meta", 10, "Social Media", "Remote"),
		},
		Hires: []employment.Event{
			employment.NewEvent(time.Date(2021, 8, 15, 0, 0, 0, 0, time.UTC), "Google", 20, "Search/Cloud", "Remote"),
			employment.NewEvent(time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), "Meta", 5, "Social Media", "Remote"),
		},
	}

	assert.Equal(t, []string{"Google", "Meta"}, ds.Companies())
	assert.Equal(t, []string{"Search/Cloud", "Social Media"}, ds.Industries())
	assert.Equal(t, []int{2021, 2022, 2023}, ds.Years())

	min, max, ok := ds.DateRange()
	require.True(t, ok)
	assert.Equal(t, time.Date(2021, 8, 15, 0, 0, 0, 0, time.UTC), min)
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), max)
}

func TestDateRangeEmptyDataset(t *testing.T) {
	_, _, ok := (&Dataset{}).DateRange()
	assert.False(t, ok)
}
