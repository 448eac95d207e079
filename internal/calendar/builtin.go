package calendar

import (
	"sort"
	"strings"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/de"
	"github.com/rickar/cal/v2/fr"
	"github.com/rickar/cal/v2/gb"
	"github.com/rickar/cal/v2/it"
	"github.com/rickar/cal/v2/nl"
	"github.com/rickar/cal/v2/pl"
	"github.com/rickar/cal/v2/us"
	"go.uber.org/zap"
)

// builtinHolidays maps ISO 3166-1 alpha-2 codes to national holiday tables
var builtinHolidays = map[string][]*cal.Holiday{
	"DE": de.Holidays,
	"FR": fr.Holidays,
	"GB": gb.Holidays,
	"IT": it.Holidays,
	"NL": nl.Holidays,
	"PL": pl.Holidays,
	"US": us.Holidays,
}

// BuiltinProvider implements Provider using the rickar/cal national holiday tables
type BuiltinProvider struct {
	logger *zap.Logger
}

// NewBuiltinProvider creates a new BuiltinProvider
func NewBuiltinProvider(logger *zap.Logger) *BuiltinProvider {
	return &BuiltinProvider{logger: logger}
}

// Countries returns the supported country codes in sorted order
func (p *BuiltinProvider) Countries() []string {
	codes := make([]string, 0, len(builtinHolidays))
	for code := range builtinHolidays {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Holidays returns the national holidays of country in year.
// When the observed date differs from the actual one both dates are reported.
func (p *BuiltinProvider) Holidays(country string, year int) ([]Holiday, error) {
	table, ok := builtinHolidays[strings.ToUpper(country)]
	if !ok {
		p.logger.Debug("Country not supported by builtin calendar",
			zap.String("country", country))
		return nil, nil
	}

	holidays := make([]Holiday, 0, len(table))
	for _, h := range table {
		holidayType := holidayTypeOf(h.Type)

		actual, _ := h.Calc(year)
		if !actual.IsZero() {
			holidays = append(holidays, Holiday{
				Date: actual,
				Name: h.Name,
				Type: holidayType,
			})
		}

		// An observed date may cross the year boundary, e.g. New Year's Day
		// falling on a Saturday is observed on December 31 of the year before
		for _, y := range []int{year - 1, year, year + 1} {
			actual, observed := h.Calc(y)
			if actual.IsZero() || observed.IsZero() || observed.Equal(actual) || observed.Year() != year {
				continue
			}
			holidays = append(holidays, Holiday{
				Date: observed,
				Name: h.Name + " (observed)",
				Type: holidayType,
			})
		}
	}

	p.logger.Debug("Builtin holidays computed",
		zap.String("country", country),
		zap.Int("year", year),
		zap.Int("count", len(holidays)))

	return holidays, nil
}

func holidayTypeOf(t cal.ObservanceType) HolidayType {
	switch t {
	case cal.ObservanceBank:
		return HolidayTypeBank
	case cal.ObservanceOther:
		return HolidayTypeObservance
	default:
		return HolidayTypePublic
	}
}
