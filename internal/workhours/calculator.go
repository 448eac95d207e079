package workhours

import (
	"errors"
	"fmt"
	"time"

	"github.com/username/working-hours/internal/calendar"
	"github.com/username/working-hours/pkg/dateutil"
	"go.uber.org/zap"
)

// DefaultHoursPerDay is used when Options.HoursPerDay is zero
const DefaultHoursPerDay = 8

var (
	ErrMissingCountry = errors.New("country code is required")
	ErrInvalidMonth   = errors.New("month must be between 1 and 12")
	ErrInvalidHours   = errors.New("hours per day must not be negative")
)

// Options describes a single working hours calculation
type Options struct {
	Country     string     // ISO 3166-1 alpha-2 code, passed to the holiday provider as is
	Year        int        // zero means the current year
	Month       time.Month // zero means the current month
	HoursPerDay int        // zero means DefaultHoursPerDay
	Week        Week
}

// withDefaults fills zero fields from now
func (o Options) withDefaults(now time.Time) Options {
	if o.Year == 0 {
		o.Year = now.Year()
	}
	if o.Month == 0 {
		o.Month = now.Month()
	}
	if o.HoursPerDay == 0 {
		o.HoursPerDay = DefaultHoursPerDay
	}
	return o
}

// Validate validates the options after defaults are applied
func (o Options) Validate() error {
	if o.Country == "" {
		return ErrMissingCountry
	}
	if o.Month < time.January || o.Month > time.December {
		return fmt.Errorf("%w, got %d", ErrInvalidMonth, o.Month)
	}
	if o.HoursPerDay < 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidHours, o.HoursPerDay)
	}
	return nil
}

// DayType represents the classification of a calendar day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	default:
		return "unknown"
	}
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date      time.Time
	Type      DayType
	Hours     int
	IsWorkday bool
	Note      string
}

// MonthInfo represents the working hours breakdown of a month
type MonthInfo struct {
	Country      string
	Year         int
	Month        time.Month
	HoursPerDay  int
	WorkingHours int // Total working hours in the month
	WorkDays     int
	Weekends     int // non-working days by weekday rules
	Holidays     int
	Days         []DayInfo
}

// Calculator computes working hours per month from a holiday provider
type Calculator struct {
	provider calendar.Provider
	logger   *zap.Logger
	now      func() time.Time
}

// NewCalculator creates a new Calculator
// A nil logger discards log output.
func NewCalculator(provider calendar.Provider, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{
		provider: provider,
		logger:   logger,
		now:      dateutil.Today,
	}
}

// Calculate returns the number of working hours in the month described by opts
func (c *Calculator) Calculate(opts Options) (int, error) {
	monthInfo, err := c.Month(opts)
	if err != nil {
		return 0, err
	}
	return monthInfo.WorkingHours, nil
}

// Month returns the per-day breakdown of the month described by opts.
// Holidays override the weekday rules.
func (c *Calculator) Month(opts Options) (*MonthInfo, error) {
	opts = opts.withDefaults(c.now())
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	holidays, err := ResolveHolidays(c.provider, opts.Country, opts.Year, opts.Month)
	if err != nil {
		return nil, err
	}

	daysInMonth := dateutil.DaysInMonth(opts.Year, opts.Month)
	monthInfo := &MonthInfo{
		Country:     opts.Country,
		Year:        opts.Year,
		Month:       opts.Month,
		HoursPerDay: opts.HoursPerDay,
		Days:        make([]DayInfo, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(opts.Year, opts.Month, day, 0, 0, 0, 0, time.UTC)
		dayInfo := DayInfo{Date: date}

		switch {
		case holidays.Has(date):
			dayInfo.Type = DayTypeHoliday
			dayInfo.Note = holidays.Name(date)
			monthInfo.Holidays++
		case opts.Week.IsWorkingDay(date.Weekday()):
			dayInfo.Type = DayTypeWorkday
			dayInfo.Hours = opts.HoursPerDay
			dayInfo.IsWorkday = true
			monthInfo.WorkDays++
			monthInfo.WorkingHours += opts.HoursPerDay
		default:
			dayInfo.Type = DayTypeWeekend
			monthInfo.Weekends++
		}

		monthInfo.Days = append(monthInfo.Days, dayInfo)
	}

	c.logger.Debug("Working hours calculated",
		zap.String("country", opts.Country),
		zap.Int("year", opts.Year),
		zap.Int("month", int(opts.Month)),
		zap.Int("holidays", len(holidays)),
		zap.Int("work_days", monthInfo.WorkDays),
		zap.Int("working_hours", monthInfo.WorkingHours))

	return monthInfo, nil
}

// Calculate computes working hours for opts with a throwaway Calculator
func Calculate(provider calendar.Provider, opts Options) (int, error) {
	return NewCalculator(provider, zap.NewNop()).Calculate(opts)
}
