// Package periods derives the set of (year, month) periods published on the
// MMSDM Monthly Data Archive. The archive publishes one directory per month
// starting July 2009, so the catalog is a pure function of the current date
// and needs no network access.
package periods

import (
	"fmt"
	"sort"

	"github.com/jonboulle/clockwork"
)

// First monthly archive published on NEMWEB.
const (
	EpochYear  = 2009
	EpochMonth = 7
)

type Period struct {
	Year  int
	Month int
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Compare orders periods chronologically: year first, then month.
func (p Period) Compare(other Period) int {
	if p.Year != other.Year {
		return p.Year - other.Year
	}
	return p.Month - other.Month
}

// Available maps each year to the ordered months with published data. The
// epoch year starts at the epoch month, the current year ends at the current
// month and every year in between carries all twelve months.
func Available(clock clockwork.Clock) map[int][]int {
	now := clock.Now()
	currentYear := now.Year()
	currentMonth := int(now.Month())

	catalog := map[int][]int{}
	for year := EpochYear; year <= currentYear; year++ {
		first := 1
		if year == EpochYear {
			first = EpochMonth
		}
		last := 12
		if year == currentYear {
			last = currentMonth
		}

		var months []int
		for month := first; month <= last; month++ {
			months = append(months, month)
		}
		catalog[year] = months
	}
	return catalog
}

// Contains reports whether the archive publishes data for p at the time
// given by clock.
func Contains(clock clockwork.Clock, p Period) bool {
	if p.Month < 1 || p.Month > 12 {
		return false
	}
	now := clock.Now()
	epoch := Period{Year: EpochYear, Month: EpochMonth}
	current := Period{Year: now.Year(), Month: int(now.Month())}
	return p.Compare(epoch) >= 0 && p.Compare(current) <= 0
}

// Years returns the catalog's years in ascending order, for rendering.
func Years(catalog map[int][]int) []int {
	years := make([]int, 0, len(catalog))
	for year := range catalog {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}
