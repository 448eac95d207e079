package calendar

import (
	"fmt"

	"go.uber.org/zap"
)

// CompositeProvider implements Provider with fallback strategy
// Primary: builtin tables or remote API
// Fallback: FileProvider (local file)
type CompositeProvider struct {
	primary  Provider
	fallback Provider
	logger   *zap.Logger
}

// NewCompositeProvider creates a new CompositeProvider
func NewCompositeProvider(primary, fallback Provider, logger *zap.Logger) *CompositeProvider {
	return &CompositeProvider{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Holidays asks the primary provider and falls back on error
// or when the primary knows nothing about the country and year
func (cp *CompositeProvider) Holidays(country string, year int) ([]Holiday, error) {
	holidays, err := cp.primary.Holidays(country, year)
	if err == nil && len(holidays) > 0 {
		return holidays, nil
	}

	if err != nil {
		cp.logger.Warn("Primary calendar failed, falling back",
			zap.String("country", country),
			zap.Int("year", year),
			zap.Error(err))
	} else {
		cp.logger.Debug("Primary calendar has no holidays, trying fallback",
			zap.String("country", country),
			zap.Int("year", year))
	}

	fallbackHolidays, fallbackErr := cp.fallback.Holidays(country, year)
	if fallbackErr != nil {
		if err != nil {
			return nil, fmt.Errorf("primary and fallback calendars failed: primary=%w, fallback=%v", err, fallbackErr)
		}
		cp.logger.Warn("Fallback calendar failed, keeping primary result",
			zap.Error(fallbackErr))
		return holidays, nil
	}

	return fallbackHolidays, nil
}

// LoadFallback loads the fallback calendar (if FileProvider)
func (cp *CompositeProvider) LoadFallback() error {
	if fp, ok := cp.fallback.(*FileProvider); ok {
		if err := fp.Load(); err != nil {
			return fmt.Errorf("failed to load fallback calendar: %w", err)
		}
		cp.logger.Info("Fallback calendar loaded successfully")
	}
	return nil
}
