package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for all calendar dates.
const DateLayout = "2006-01-02"

// TimestampLayout is the wire format for full timestamps.
const TimestampLayout = "2006-01-02T15:04:05Z"

// ParseDate parses a YYYY-MM-DD string into a midnight-UTC time. All date
// columns are normalized this way so range comparisons behave identically on
// MySQL and SQLite.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatDate renders a date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current date at midnight UTC.
func Today() time.Time {
	return TruncateToDay(time.Now().UTC())
}

// TruncateToDay drops the time-of-day component, keeping UTC.
func TruncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// PeriodRange returns the half-open [start, end) range covering a calendar
// year, or a single month of it when month is 1-12.
func PeriodRange(year, month int) (time.Time, time.Time) {
	if month >= 1 && month <= 12 {
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0)
	}
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// DaysIn returns the number of days in the period produced by PeriodRange.
func DaysIn(year, month int) int {
	start, end := PeriodRange(year, month)
	return int(end.Sub(start).Hours() / 24)
}
