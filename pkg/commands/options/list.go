package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/calscroll/pkg/calendarlist"
	"tableflip.dev/calscroll/pkg/config"
)

// ListOptions are the calendar list flags. They share their names with the
// config keys, so a flag that is set wins over the config file.
type ListOptions struct {
	Past            int
	Future          int
	Horizontal      bool
	Paging          bool
	ScrollIndicator bool
	ScrollsToTop    bool
	FirstDay        int
	Height          int
	Width           int
	WeekRow         int
	OutsideDays     bool
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	f := cmd.Flags()
	f.IntVar(&o.Past, config.KeyPast, calendarlist.DefaultScrollRange,
		"Months to show before the current month.")
	f.IntVar(&o.Future, config.KeyFuture, calendarlist.DefaultScrollRange,
		"Months to show after the current month.")
	f.BoolVar(&o.Horizontal, config.KeyHorizontal, false,
		"Lay the months out side by side.")
	f.BoolVar(&o.Paging, config.KeyPaging, false,
		"Scroll whole months at a time (horizontal without --width only).")
	f.BoolVar(&o.ScrollIndicator, config.KeyScrollIndicator, false,
		"Show the scroll indicator.")
	f.BoolVar(&o.ScrollsToTop, config.KeyScrollsToTop, false,
		"Let g and home jump back to the first month.")
	f.IntVar(&o.FirstDay, config.KeyFirstDay, 0,
		"First day of the week, 0 (Sunday) to 6 (Saturday).")
	f.IntVar(&o.Height, config.KeyHeight, 0,
		"Lines per month; the config default when 0.")
	f.IntVar(&o.Width, config.KeyWidth, 0,
		"Columns per month in horizontal mode; the terminal width when 0.")
	f.IntVar(&o.WeekRow, config.KeyWeekRow, 0,
		"Lines per week row; the config default when 0.")
	f.BoolVar(&o.OutsideDays, config.KeyOutsideDays, false,
		"Show the neighbouring months' days in the first and last week.")
}
