package calendar

import (
	"fmt"
	"strings"
	"time"
)

// HolidayType represents the classification of a holiday
type HolidayType string

const (
	HolidayTypePublic     HolidayType = "public"
	HolidayTypeBank       HolidayType = "bank"
	HolidayTypeSchool     HolidayType = "school"
	HolidayTypeOptional   HolidayType = "optional"
	HolidayTypeObservance HolidayType = "observance"
)

// ParseHolidayType parses a holiday type name (case-insensitive)
func ParseHolidayType(s string) (HolidayType, error) {
	switch t := HolidayType(strings.ToLower(strings.TrimSpace(s))); t {
	case HolidayTypePublic, HolidayTypeBank, HolidayTypeSchool, HolidayTypeOptional, HolidayTypeObservance:
		return t, nil
	default:
		return "", fmt.Errorf("unknown holiday type: %q", s)
	}
}

// Holiday represents a single holiday reported by a provider
type Holiday struct {
	Date time.Time
	Name string
	Type HolidayType
}

// Provider returns the holidays of a country for a whole year
type Provider interface {
	// Holidays returns every holiday known for country in year.
	// Unknown countries yield an empty list, not an error.
	Holidays(country string, year int) ([]Holiday, error)
}

// ProviderFunc adapts a plain function to the Provider interface
type ProviderFunc func(country string, year int) ([]Holiday, error)

// Holidays calls f(country, year)
func (f ProviderFunc) Holidays(country string, year int) ([]Holiday, error) {
	return f(country, year)
}
