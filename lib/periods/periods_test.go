package periods

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

func fakeClock(t *testing.T, year, month, day int) clockwork.Clock {
	t.Helper()
	return clockwork.NewFakeClockAt(
		time.Date(year, time.Month(month), day, 10, 30, 0, 0, time.UTC),
	)
}

func TestAvailableBounds(t *testing.T) {
	catalog := Available(fakeClock(t, 2023, 4, 15))

	require.Equal(t, []int{7, 8, 9, 10, 11, 12}, catalog[EpochYear])
	require.Equal(t, []int{1, 2, 3, 4}, catalog[2023])
	require.NotContains(t, catalog, EpochYear-1)
	require.NotContains(t, catalog, 2024)

	for year := EpochYear + 1; year < 2023; year++ {
		require.Len(t, catalog[year], 12, "year %d should carry all months", year)
	}
}

func TestAvailableEpochYearIsCurrentYear(t *testing.T) {
	catalog := Available(fakeClock(t, EpochYear, 9, 1))

	require.Len(t, catalog, 1)
	require.Equal(t, []int{7, 8, 9}, catalog[EpochYear])
}

func TestAvailableNeverIncludesFutureMonth(t *testing.T) {
	for month := 1; month <= 12; month++ {
		catalog := Available(fakeClock(t, 2022, month, 3))
		require.Equal(t, month, len(catalog[2022]))
		require.Equal(t, month, catalog[2022][len(catalog[2022])-1])
	}
}

func TestContains(t *testing.T) {
	clock := fakeClock(t, 2023, 4, 15)

	testCases := []struct {
		period   Period
		expected bool
	}{
		{Period{EpochYear, EpochMonth}, true},
		{Period{2023, 4}, true},
		{Period{2022, 7}, true},
		{Period{EpochYear, EpochMonth - 1}, false},
		{Period{2023, 5}, false},
		{Period{2024, 1}, false},
		{Period{1999, 1}, false},
		{Period{2022, 0}, false},
		{Period{2022, 13}, false},
	}
	for _, test := range testCases {
		require.Equal(
			t, test.expected, Contains(clock, test.period),
			"period %s", test.period,
		)
	}
}

func TestYearsSorted(t *testing.T) {
	catalog := Available(fakeClock(t, 2012, 1, 1))
	require.Equal(t, []int{2009, 2010, 2011, 2012}, Years(catalog))
}
