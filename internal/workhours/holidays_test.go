package workhours

import (
	"errors"
	"testing"
	"time"

	"github.com/username/working-hours/internal/calendar"
)

func TestResolveHolidays(t *testing.T) {
	provider := calendar.ProviderFunc(func(country string, year int) ([]calendar.Holiday, error) {
		return []calendar.Holiday{
			{Date: day(2024, time.November, 30), Name: "before", Type: calendar.HolidayTypePublic},
			{Date: day(2024, time.December, 1), Name: "first", Type: calendar.HolidayTypePublic},
			{Date: day(2024, time.December, 24), Name: "eve", Type: calendar.HolidayTypeObservance},
			{Date: day(2024, time.December, 25), Name: "christmas", Type: calendar.HolidayTypePublic},
			{Date: day(2024, time.December, 25), Name: "duplicate", Type: calendar.HolidayTypeBank},
			{Date: time.Date(2024, time.December, 31, 18, 0, 0, 0, time.UTC), Name: "last", Type: calendar.HolidayTypeSchool},
			{Date: day(2025, time.January, 1), Name: "after", Type: calendar.HolidayTypePublic},
		}, nil
	})

	set, err := ResolveHolidays(provider, "PL", 2024, time.December)
	if err != nil {
		t.Fatalf("ResolveHolidays() error = %v", err)
	}

	want := map[string]string{
		"2024-12-01": "first",
		"2024-12-25": "christmas",
		"2024-12-31": "last",
	}
	if len(set) != len(want) {
		t.Fatalf("ResolveHolidays() = %v, want %v", set, want)
	}
	for key, name := range want {
		if set[key] != name {
			t.Errorf("set[%s] = %q, want %q", key, set[key], name)
		}
	}

	if !set.Has(day(2024, time.December, 25)) {
		t.Error("Has(Dec 25) = false, want true")
	}
	if set.Has(day(2024, time.December, 24)) {
		t.Error("Has(Dec 24) = true, want false (observance)")
	}
}

func TestResolveHolidays_ProviderError(t *testing.T) {
	errDown := errors.New("down")
	provider := calendar.ProviderFunc(func(country string, year int) ([]calendar.Holiday, error) {
		return nil, errDown
	})

	if _, err := ResolveHolidays(provider, "PL", 2024, time.December); !errors.Is(err, errDown) {
		t.Errorf("ResolveHolidays() error = %v, want %v", err, errDown)
	}
}
