package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/username/working-hours/internal/calendar"
	"github.com/username/working-hours/internal/workhours"
)

const envPrefix = "WORKING_HOURS"

// Holiday sources
const (
	SourceBuiltin  = "builtin"
	SourceIsDayOff = "isdayoff"
	SourceFile     = "file"
)

// Config represents application configuration
type Config struct {
	Defaults DefaultsConfig `mapstructure:"defaults"`
	Holidays HolidaysConfig `mapstructure:"holidays"`
	Log      LogConfig      `mapstructure:"log"`
}

// DefaultsConfig represents calculation defaults overridable from the command line
type DefaultsConfig struct {
	Country     string   `mapstructure:"country"`
	HoursPerDay int      `mapstructure:"hours_per_day"`
	WithDays    []string `mapstructure:"with_days"`    // e.g. [saturday]
	WithoutDays []string `mapstructure:"without_days"` // e.g. [friday]
}

// HolidaysConfig represents holiday provider configuration
type HolidaysConfig struct {
	Source      string `mapstructure:"source"`       // "builtin", "isdayoff" or "file"
	File        string `mapstructure:"file"`         // Local holidays file; fallback for other sources
	IsDayOffURL string `mapstructure:"isdayoff_url"` // For isdayoff source
	FallbackURL string `mapstructure:"fallback_url"` // xmlcalendar.ru template with {country} and {year}
	CacheTTL    string `mapstructure:"cache_ttl"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load loads configuration from file and environment.
// A missing config file is not an error unless configPath names it explicitly.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.working-hours")
		v.AddConfigPath("/etc/working-hours")
	}

	// Read environment variables: WORKING_HOURS_HOLIDAYS_SOURCE -> holidays.source
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("defaults.country", "")
	v.SetDefault("defaults.hours_per_day", workhours.DefaultHoursPerDay)
	v.SetDefault("defaults.with_days", []string{})
	v.SetDefault("defaults.without_days", []string{})
	v.SetDefault("holidays.source", SourceBuiltin)
	v.SetDefault("holidays.file", "")
	v.SetDefault("holidays.isdayoff_url", calendar.DefaultIsDayOffURL)
	v.SetDefault("holidays.fallback_url", calendar.DefaultXMLCalendarURL)
	v.SetDefault("holidays.cache_ttl", "24h")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Defaults.HoursPerDay < 0 {
		return fmt.Errorf("defaults.hours_per_day must not be negative")
	}
	if _, err := workhours.ParseWeekdays(c.Defaults.WithDays); err != nil {
		return fmt.Errorf("defaults.with_days: %w", err)
	}
	if _, err := workhours.ParseWeekdays(c.Defaults.WithoutDays); err != nil {
		return fmt.Errorf("defaults.without_days: %w", err)
	}

	switch c.Holidays.Source {
	case SourceBuiltin, SourceIsDayOff:
	case SourceFile:
		if c.Holidays.File == "" {
			return fmt.Errorf("holidays.file is required for file source")
		}
	default:
		return fmt.Errorf("holidays.source must be '%s', '%s' or '%s', got '%s'",
			SourceBuiltin, SourceIsDayOff, SourceFile, c.Holidays.Source)
	}

	if c.Holidays.CacheTTL != "" {
		if _, err := time.ParseDuration(c.Holidays.CacheTTL); err != nil {
			return fmt.Errorf("holidays.cache_ttl: %w", err)
		}
	}

	return nil
}

// Week builds the weekly working pattern from the configured day lists
func (c *DefaultsConfig) Week() (workhours.Week, error) {
	var week workhours.Week

	with, err := workhours.ParseWeekdays(c.WithDays)
	if err != nil {
		return week, err
	}
	without, err := workhours.ParseWeekdays(c.WithoutDays)
	if err != nil {
		return week, err
	}

	week.Include(with...)
	week.Exclude(without...)
	return week, nil
}

// GetCacheTTL returns cache TTL duration
func (c *HolidaysConfig) GetCacheTTL() time.Duration {
	if c.CacheTTL == "" {
		return 24 * time.Hour
	}
	duration, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Holidays.File = os.ExpandEnv(c.Holidays.File)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
