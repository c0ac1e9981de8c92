package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/calscroll/pkg/dateutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// CurrentOptions
type CurrentOptions struct {
	CurrentString string
	// Now defaults to time.Now.
	Now func() time.Time
}

func AddCurrentArgs(cmd *cobra.Command, o *CurrentOptions) {
	cmd.Flags().StringVar(&o.CurrentString, "current", "",
		`Open on this date instead of today, example: --current="2020-2-28", --current="2/28" or --current="2020-02".`)
}

// GetCurrent returns the parsed date, or nil when the flag is unset.
func (o *CurrentOptions) GetCurrent() (*time.Time, error) {
	if o.CurrentString == "" {
		return nil, nil
	}
	t, err := ParseDay(o.CurrentString, o.now())
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (o *CurrentOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// ParseDay accepts "2020-2-28", "2/28" and every form dateutil.Parse knows.
func ParseDay(s string, now time.Time) (time.Time, error) {
	if t, err := time.ParseInLocation(layoutISO, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(layoutISOShort, s, time.Local); err == nil {
		// Let the year be the same.
		t = t.AddDate(now.Year(), 0, 0)
		// I am gonna assume if you said 1/3 on 12/5, you meant next year, not 11 months ago.
		if t.Before(dateutil.FirstOfMonth(now)) {
			t = t.AddDate(1, 0, 0)
		}
		return t, nil
	}
	if t, ok := dateutil.Parse(s); ok {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unknown date %q", s)
}
