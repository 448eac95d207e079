package main

import (
	"fmt"

	"github.com/username/working-hours/internal/calendar"
	"github.com/username/working-hours/internal/config"
	"go.uber.org/zap"
)

// newProvider builds the holiday provider selected by the config
func newProvider(cfg *config.Config, logger *zap.Logger) (calendar.Provider, error) {
	var primary calendar.Provider

	switch cfg.Holidays.Source {
	case config.SourceFile:
		logger.Info("Using local holidays file", zap.String("file", cfg.Holidays.File))
		fp := calendar.NewFileProvider(cfg.Holidays.File, logger)
		if err := fp.Load(); err != nil {
			return nil, err
		}
		return fp, nil

	case config.SourceBuiltin:
		logger.Info("Using builtin holiday tables")
		primary = calendar.NewBuiltinProvider(logger)

	case config.SourceIsDayOff:
		logger.Info("Using isdayoff.ru calendar API")
		primary = calendar.NewIsDayOffProvider(
			cfg.Holidays.IsDayOffURL,
			cfg.Holidays.FallbackURL,
			cfg.Holidays.GetCacheTTL(),
			logger,
		)

	default:
		return nil, fmt.Errorf("unknown holiday source: %s", cfg.Holidays.Source)
	}

	if cfg.Holidays.File == "" {
		return primary, nil
	}

	composite := calendar.NewCompositeProvider(primary, calendar.NewFileProvider(cfg.Holidays.File, logger), logger)
	if err := composite.LoadFallback(); err != nil {
		logger.Warn("Failed to load fallback calendar, continuing without it",
			zap.Error(err))
	}

	return composite, nil
}
