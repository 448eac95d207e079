package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day key format used across the module
const DateLayout = "2006-01-02"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// StartOfMonth returns day 1 of the given month in UTC
func StartOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// EndOfMonth returns the last calendar day of the given month ("day 0 of next month")
func EndOfMonth(year int, month time.Month) time.Time {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of calendar days in the given month
func DaysInMonth(year int, month time.Month) int {
	return EndOfMonth(year, month).Day()
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// DayKey returns the calendar-day key (YYYY-MM-DD) of the date, ignoring time and location
func DayKey(date time.Time) string {
	return date.Format(DateLayout)
}

// InRange reports whether date falls within [from, to] at calendar-day granularity
func InRange(date, from, to time.Time) bool {
	key := DayKey(date)
	return key >= DayKey(from) && key <= DayKey(to)
}

// ParseDate parses date string in various formats
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		DateLayout,
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
		"2006-01-02T15:04:05-0700",
		"2006-01-02 15:04:05",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", dateStr)
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
