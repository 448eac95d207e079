package workhours

import (
	"fmt"
	"time"

	"github.com/username/working-hours/internal/calendar"
	"github.com/username/working-hours/pkg/dateutil"
)

// HolidaySet holds the days off of a single month, keyed by YYYY-MM-DD
type HolidaySet map[string]string // day key -> holiday name

// Has reports whether the calendar day of date is a holiday
func (s HolidaySet) Has(date time.Time) bool {
	_, ok := s[dateutil.DayKey(date)]
	return ok
}

// Name returns the holiday name for the calendar day of date
func (s HolidaySet) Name(date time.Time) string {
	return s[dateutil.DayKey(date)]
}

// ResolveHolidays asks the provider for the country holidays of year and keeps
// the non-observance ones falling within month (inclusive, calendar-day comparison)
func ResolveHolidays(provider calendar.Provider, country string, year int, month time.Month) (HolidaySet, error) {
	holidays, err := provider.Holidays(country, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get holidays for %s/%d: %w", country, year, err)
	}

	startOfMonth := dateutil.StartOfMonth(year, month)
	endOfMonth := dateutil.EndOfMonth(year, month)

	set := make(HolidaySet)
	for _, h := range holidays {
		if h.Type == calendar.HolidayTypeObservance {
			continue
		}
		if !dateutil.InRange(h.Date, startOfMonth, endOfMonth) {
			continue
		}

		key := dateutil.DayKey(h.Date)
		if _, exists := set[key]; !exists {
			set[key] = h.Name
		}
	}

	return set, nil
}
