package workhours

import (
	"fmt"
	"strings"
	"time"
)

// WeekdayNames holds weekday names indexed by time.Weekday (Sunday = 0)
var WeekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// DayRule holds the include/exclude flags for a single weekday
type DayRule struct {
	With    bool // count the weekday as working
	Without bool // never count the weekday as working; wins over With
}

// Week is the weekly working pattern indexed by time.Weekday
type Week [7]DayRule

// IsWorkingDay reports whether weekday is a working day.
// Without wins over With; with neither set Monday..Friday are working days.
func (w Week) IsWorkingDay(weekday time.Weekday) bool {
	if weekday < time.Sunday || weekday > time.Saturday {
		return false
	}

	rule := w[weekday]
	if rule.Without {
		return false
	}
	if rule.With {
		return true
	}

	return weekday >= time.Monday && weekday <= time.Friday
}

// Include marks the weekdays as working days
func (w *Week) Include(days ...time.Weekday) {
	for _, d := range days {
		w[d].With = true
	}
}

// Exclude marks the weekdays as non-working days
func (w *Week) Exclude(days ...time.Weekday) {
	for _, d := range days {
		w[d].Without = true
	}
}

// ParseWeekday parses a weekday name: "friday", "Fridays" or "fri"
func ParseWeekday(name string) (time.Weekday, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimSuffix(n, "s")

	for i, full := range WeekdayNames {
		full = strings.ToLower(full)
		if n == full || (len(n) == 3 && strings.HasPrefix(full, n)) {
			return time.Weekday(i), nil
		}
	}

	return time.Sunday, fmt.Errorf("unknown weekday: %q", name)
}

// ParseWeekdays parses a list of weekday names
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		d, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}
