// Package dateutils provides the date parsing and formatting helpers used
// throughout the application.
package dateutils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date layouts found in SII exports and accepted for manual input.
const (
	DateLayoutChilean   = "02/01/2006"
	DateLayoutISO       = "2006-01-02"
	DateLayoutDashed    = "02-01-2006"
	DateLayoutShortYear = "02/01/06"
)

// CommonFormats is the list of layouts tried, in order, when parsing dates.
var CommonFormats = []string{
	DateLayoutChilean,
	DateLayoutISO,
	DateLayoutDashed,
	DateLayoutShortYear,
}

// ParseDate attempts to parse a date string using the known layouts.
// Returns the parsed time, normalized to midnight UTC, and the layout that
// matched.
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)
	if dateStr == "" {
		return time.Time{}, "", fmt.Errorf("empty date")
	}

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return Midnight(t), format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString trims a date string and drops anything after the first
// space. Exports sometimes carry a time component ("05/01/2024 00:00:00")
// that none of the accepted layouts expect.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	if idx := strings.IndexByte(dateStr, ' '); idx >= 0 {
		dateStr = dateStr[:idx]
	}
	return dateStr
}

// Midnight normalizes a time to midnight UTC, keeping only the date part.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate formats a time.Time value according to the specified layout.
// If no layout is provided, DateLayoutChilean is used.
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutChilean
	}
	return date.Format(layout)
}

// ToChileanFormat formats a date as DD/MM/YYYY. Zero dates render empty.
func ToChileanFormat(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateLayoutChilean)
}

// StartOfMonth returns the first day of the month for a given date.
func StartOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last day of the month for a given date.
func EndOfMonth(date time.Time) time.Time {
	return StartOfMonth(date).AddDate(0, 1, -1)
}

// ParsePeriodYear extracts the year from a tax period string. Only
// four-digit years are accepted; anything else reports false.
func ParsePeriodYear(period string) (int, bool) {
	period = strings.TrimSpace(period)
	if len(period) != 4 {
		return 0, false
	}
	for i := 0; i < len(period); i++ {
		if period[i] < '0' || period[i] > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(period)
	if err != nil {
		return 0, false
	}
	return year, true
}
