package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/username/working-hours/internal/workhours"
)

// weekFlags holds the --with<Day>s / --without<Day>s flags indexed by time.Weekday
type weekFlags struct {
	with    [7]bool
	without [7]bool
}

func (w *weekFlags) register(fs *pflag.FlagSet) {
	for i, name := range workhours.WeekdayNames {
		fs.BoolVar(&w.with[i], "with"+name+"s", false,
			fmt.Sprintf("Whether to include %ss as working days", name))
		fs.BoolVar(&w.without[i], "without"+name+"s", false,
			fmt.Sprintf("Whether to exclude %ss from working days", name))
	}
}

// apply overlays the command line flags on base.
// A weekday mentioned on the command line replaces its configured rule.
func (w *weekFlags) apply(base workhours.Week) workhours.Week {
	week := base
	for i := range week {
		if w.with[i] || w.without[i] {
			week[i] = workhours.DayRule{With: w.with[i], Without: w.without[i]}
		}
	}
	return week
}
