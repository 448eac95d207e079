package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/username/working-hours/internal/calendar"
	"github.com/username/working-hours/internal/config"
	"github.com/username/working-hours/internal/workhours"
	"go.uber.org/zap"
)

var (
	configPath string
	verbose    bool
	cfg        *config.Config
	logger     *zap.Logger
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		hours        int
		month        int
		year         int
		source       string
		holidaysFile string
		breakdown    bool
		week         weekFlags
	)

	rootCmd := &cobra.Command{
		Use:   "working-hours <country>",
		Short: "Working hours in a month",
		Long: "Calculate the number of working hours in a month for a country, " +
			"taking public holidays and the weekly working pattern into account",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}

			level := cfg.Log.Level
			if verbose {
				level = "debug"
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, level)
				if err != nil {
					logger, err = initLogger(level) // Fallback to console
				}
			} else {
				logger, err = initLogger(level)
			}
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logger.Sync() //nolint:errcheck

			flags := cmd.Flags()
			if flags.Changed("source") {
				cfg.Holidays.Source = source
			}
			if flags.Changed("holidays-file") {
				cfg.Holidays.File = holidaysFile
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			opts := workhours.Options{
				Country:     strings.ToUpper(cfg.Defaults.Country),
				Year:        year,
				Month:       time.Month(month),
				HoursPerDay: cfg.Defaults.HoursPerDay,
			}
			if len(args) == 1 {
				opts.Country = strings.ToUpper(args[0])
			}
			if flags.Changed("hours") {
				opts.HoursPerDay = hours
				if hours == 0 {
					// Explicit zero must not fall back to the default
					return fmt.Errorf("--hours must be positive")
				}
			}
			if flags.Changed("month") && (month < 1 || month > 12) {
				return fmt.Errorf("--month must be between 1 and 12, got %d", month)
			}
			if flags.Changed("year") && year < 1 {
				return fmt.Errorf("--year must be positive, got %d", year)
			}

			configWeek, err := cfg.Defaults.Week()
			if err != nil {
				return err
			}
			opts.Week = week.apply(configWeek)

			provider, err := newProvider(cfg, logger)
			if err != nil {
				return err
			}

			logger.Info("Calculating working hours",
				zap.String("country", opts.Country),
				zap.Int("year", opts.Year),
				zap.Int("month", int(opts.Month)),
				zap.Int("hours_per_day", opts.HoursPerDay),
				zap.String("source", cfg.Holidays.Source))

			monthInfo, err := workhours.NewCalculator(provider, logger).Month(opts)
			if err != nil {
				return fmt.Errorf("failed to calculate working hours: %w", err)
			}

			out := cmd.OutOrStdout()
			if breakdown {
				printBreakdown(out, monthInfo)
			}
			fmt.Fprintln(out, monthInfo.WorkingHours)

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&source, "source", config.SourceBuiltin, "Holiday source: builtin, isdayoff or file")
	rootCmd.PersistentFlags().StringVar(&holidaysFile, "holidays-file", "", "Local holidays file (fallback unless --source=file)")

	flags := rootCmd.Flags()
	flags.IntVarP(&hours, "hours", "H", workhours.DefaultHoursPerDay, "The number of working hours in a single working day")
	flags.IntVarP(&month, "month", "m", 0, "The month (1-12) to calculate working hours for. Defaults to the current month")
	flags.IntVarP(&year, "year", "y", 0, "The year to calculate working hours for. Defaults to the current year")
	flags.BoolVar(&breakdown, "breakdown", false, "Print a per-day breakdown before the total")
	week.register(flags)

	rootCmd.AddCommand(countriesCmd())

	return rootCmd
}

func countriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "countries",
		Short: "List country codes with known holidays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			builtin := calendar.NewBuiltinProvider(logger)
			isdayoff := calendar.NewIsDayOffProvider(cfg.Holidays.IsDayOffURL, cfg.Holidays.FallbackURL, cfg.Holidays.GetCacheTTL(), logger)

			fmt.Fprintf(out, "%-9s %s\n", config.SourceBuiltin+":", strings.Join(builtin.Countries(), " "))
			fmt.Fprintf(out, "%-9s %s\n", config.SourceIsDayOff+":", strings.Join(isdayoff.Countries(), " "))
			return nil
		},
	}
}

func printBreakdown(out io.Writer, monthInfo *workhours.MonthInfo) {
	fmt.Fprintf(out, "📅 %s %d-%02d (%dh per working day)\n",
		monthInfo.Country, monthInfo.Year, int(monthInfo.Month), monthInfo.HoursPerDay)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════")
	fmt.Fprintln(out, "  Date       | Day | Status  | Hours | Note")
	fmt.Fprintln(out, "-------------+-----+---------+-------+----------------")
	for _, day := range monthInfo.Days {
		fmt.Fprintf(out, "  %s | %s | %-7s | %4dh | %s\n",
			day.Date.Format("2006-01-02"),
			day.Date.Format("Mon"),
			day.Type,
			day.Hours,
			day.Note)
	}
	fmt.Fprintf(out, "\n  Working days: %d, holidays: %d, days off: %d\n\n",
		monthInfo.WorkDays, monthInfo.Holidays, monthInfo.Weekends)
}
