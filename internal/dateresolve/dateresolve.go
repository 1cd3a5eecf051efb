// Package dateresolve fills in operation dates for rows that do not carry a
// parseable one. The fallback chain goes: the row's own cell, another row
// in the same file sharing the folio, the filename, the declared tax
// period, and finally the current year. The chain always yields a date.
package dateresolve

import (
	"regexp"
	"strconv"
	"time"

	"cajapyme/libro-caja/internal/dateutils"
)

// filenameDateRe matches year-month stamps like "2024_05", "2024-05" or
// "202405" inside file names.
var filenameDateRe = regexp.MustCompile(`(\d{4})[_\-]?(\d{2})`)

// Resolver resolves operation dates against a declared tax period.
type Resolver struct {
	period string
	now    func() time.Time
}

// New creates a Resolver for the given tax period. An empty or malformed
// period pushes the final fallbacks onto the current year.
func New(period string) *Resolver {
	return &Resolver{period: period, now: time.Now}
}

// Resolve produces the operation date for one row. The second return value
// reports whether the date came from the row's own cell; callers count the
// fallbacks as adjusted dates.
func (r *Resolver) Resolve(cell string, folioDates map[string]time.Time, folio, filename string) (time.Time, bool) {
	if t, _, err := dateutils.ParseDate(cell); err == nil {
		return t, true
	}
	if folio != "" {
		if t, ok := folioDates[folio]; ok {
			return t, false
		}
	}
	if t, ok := r.FromFilename(filename); ok {
		return t, false
	}
	return r.PeriodFallback(), false
}

// FromFilename extracts a year-month stamp from a file name and returns the
// last day of that month. Later stamps win, so a trailing "2024_05"
// outranks an incidental number earlier in the name.
func (r *Resolver) FromFilename(filename string) (time.Time, bool) {
	matches := filenameDateRe.FindAllStringSubmatch(filename, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		year, _ := strconv.Atoi(matches[i][1])
		month, _ := strconv.Atoi(matches[i][2])
		if year >= 2000 && year <= 2100 && month >= 1 && month <= 12 {
			first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
			return dateutils.EndOfMonth(first), true
		}
	}
	return time.Time{}, false
}

// PeriodFallback returns December 31 of the declared period year, or of the
// current year when no usable period was given.
func (r *Resolver) PeriodFallback() time.Time {
	return time.Date(r.year(), time.December, 31, 0, 0, 0, 0, time.UTC)
}

// OpeningDate returns January 1 of the declared period year, or of the
// current year when no usable period was given. The opening balance row is
// dated this way so it sorts before every movement of the period.
func (r *Resolver) OpeningDate() time.Time {
	return time.Date(r.year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

func (r *Resolver) year() int {
	if year, ok := dateutils.ParsePeriodYear(r.period); ok {
		return year
	}
	return r.now().Year()
}
