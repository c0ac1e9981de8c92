// Package clock tells the calendar when the date changes.
package clock

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"tableflip.dev/calscroll/pkg/logging"
)

// Midnight is the default schedule: the start of every day.
const Midnight = "@midnight"

// Clock runs fn with the current time on a cron schedule.
type Clock struct {
	cron *cron.Cron
	now  func() time.Time
}

// Option customizes a Clock.
type Option func(*Clock)

// WithNow replaces time.Now.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) { c.now = now }
}

// New schedules fn on spec, a cron expression or descriptor such as
// "@midnight", evaluated in loc. A nil loc means time.Local.
func New(spec string, loc *time.Location, fn func(time.Time), opts ...Option) (*Clock, error) {
	if loc == nil {
		loc = time.Local
	}
	c := &Clock{
		cron: cron.New(cron.WithLocation(loc)),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if _, err := c.cron.AddFunc(spec, func() {
		now := c.now().In(loc)
		logging.Info("clock: tick", "spec", spec, "now", now.Format(time.RFC3339))
		fn(now)
	}); err != nil {
		return nil, fmt.Errorf("clock: schedule %q: %w", spec, err)
	}
	return c, nil
}

// Next returns the next time the schedule fires.
func (c *Clock) Next() time.Time {
	entries := c.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	if !entries[0].Next.IsZero() {
		return entries[0].Next
	}
	return entries[0].Schedule.Next(c.now())
}

// Run starts the schedule and blocks until ctx is done, then waits for a
// running tick to finish.
func (c *Clock) Run(ctx context.Context) {
	c.cron.Start()
	<-ctx.Done()
	<-c.cron.Stop().Done()
}
