// Package calendarlist is the windowing engine behind a long, scrollable run
// of months. Only the months around the visible band are materialized to
// concrete dates; the rest are cheap placeholders.
//
// The engine does not draw or scroll anything itself. A Host provides the
// viewport and performs scrolling, and a MonthRenderer draws single months.
package calendarlist

import (
	"time"

	"tableflip.dev/calscroll/pkg/dateutil"
)

const (
	// DefaultScrollRange is the default number of months before and after
	// the current month.
	DefaultScrollRange = 50
	// DefaultCalendarHeight is the default extent of one month.
	DefaultCalendarHeight = 360
	// DefaultCalendarWidth is the month extent of horizontal lists when
	// neither CalendarWidth nor the host viewport width is known.
	DefaultCalendarWidth = 360
	// DefaultWeekRowHeight is the default extent of one week row in a month.
	DefaultWeekRowHeight = 46
	// ViewabilityThreshold is the percentage of a row that must be on screen
	// for the host to report it visible.
	ViewabilityThreshold = 50
)

// Host is the virtualized list the engine drives.
type Host interface {
	// ScrollToOffset moves the viewport to offset. It must not block.
	ScrollToOffset(offset int, animated bool)
	// ScrollToIndex moves the viewport to the start of row index.
	ScrollToIndex(index int, animated bool)
	// ViewportSize reports the current viewport dimensions.
	ViewportSize() (width, height int)
}

// Options configures a List. Start from DefaultOptions; the zero value turns
// scrolling off and uses empty ranges.
type Options struct {
	// Current is the initial current date, in any form dateutil.Parse
	// accepts. Unset or unparseable means today.
	Current any

	PastScrollRange   int
	FutureScrollRange int

	ScrollEnabled       bool
	ShowScrollIndicator bool
	ScrollsToTop        bool
	PagingEnabled       bool
	Horizontal          bool

	// CalendarWidth is the extent of a month in horizontal lists. Zero uses
	// the host viewport width.
	CalendarWidth  int
	CalendarHeight int
	WeekRowHeight  int
	FirstDay       time.Weekday

	// OnVisibleMonthsChange receives the days of the visible months after
	// every visibility change except the first.
	OnVisibleMonthsChange func([]dateutil.DateData)

	// Now returns today; defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns Options with the documented defaults.
func DefaultOptions() Options {
	return Options{
		PastScrollRange:   DefaultScrollRange,
		FutureScrollRange: DefaultScrollRange,
		ScrollEnabled:     true,
		CalendarHeight:    DefaultCalendarHeight,
		WeekRowHeight:     DefaultWeekRowHeight,
	}
}

// HostConfig is what a host needs to know to present the list.
type HostConfig struct {
	ItemCount           int
	InitialIndex        int
	ScrollEnabled       bool
	ShowScrollIndicator bool
	ScrollsToTop        bool
	PagingEnabled       bool
	Horizontal          bool
	VisiblePercent      int
}

// List ties the row store, viewability tracking, scroll coordination and item
// rendering together. It is not safe for concurrent use; drive it from the
// host's event loop.
type List struct {
	opts     Options
	host     Host
	renderer MonthRenderer

	store    *Store
	tracker  *tracker
	openDate time.Time
	cfg      RenderConfig
}

// New builds a List. host and renderer may be nil and set later.
func New(opts Options, host Host, renderer MonthRenderer) *List {
	if opts.CalendarHeight <= 0 {
		opts.CalendarHeight = DefaultCalendarHeight
	}
	if opts.WeekRowHeight <= 0 {
		opts.WeekRowHeight = DefaultWeekRowHeight
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	l := &List{
		opts:     opts,
		host:     host,
		renderer: renderer,
	}
	l.openDate = dateutil.ParseOr(opts.Current, opts.Now)
	l.store = NewStore(l.openDate, opts.PastScrollRange, opts.FutureScrollRange)
	l.tracker = &tracker{
		store: l.store,
		correct: func() {
			l.scrollToIndex(l.MonthIndex(l.openDate), false)
		},
		visible: opts.OnVisibleMonthsChange,
	}
	return l
}

// SetHost replaces the host.
func (l *List) SetHost(h Host) { l.host = h }

// SetRenderer replaces the month renderer.
func (l *List) SetRenderer(r MonthRenderer) { l.renderer = r }

// Options returns the resolved options.
func (l *List) Options() Options { return l.opts }

// HostConfig returns the presentation settings for the host.
func (l *List) HostConfig() HostConfig {
	return HostConfig{
		ItemCount:           l.store.Len(),
		InitialIndex:        l.InitialScrollIndex(),
		ScrollEnabled:       l.opts.ScrollEnabled,
		ShowScrollIndicator: l.opts.ShowScrollIndicator,
		ScrollsToTop:        l.opts.ScrollsToTop,
		PagingEnabled:       l.opts.PagingEnabled && l.opts.CalendarWidth == 0,
		Horizontal:          l.opts.Horizontal,
		VisiblePercent:      ViewabilityThreshold,
	}
}

// OpenDate returns the current date the list is opened on.
func (l *List) OpenDate() time.Time { return l.openDate }

// Len returns the number of rows.
func (l *List) Len() int { return l.store.Len() }

// Row returns the row at index, or nil.
func (l *List) Row(index int) Row { return l.store.Row(index) }

// Rows returns a copy of all rows.
func (l *List) Rows() []Row { return l.store.Rows() }

// Store exposes the row store.
func (l *List) Store() *Store { return l.store }

// Settled reports whether the first visibility notification has been handled.
func (l *List) Settled() bool { return l.tracker.settled() }

// OnVisibilityChanged is the host's visibility callback.
func (l *List) OnVisibilityChanged(visible []int) {
	l.tracker.onVisibilityChanged(visible)
}

// SetRenderConfig replaces the renderer passthrough config and bumps every
// materialized row so they redraw even though their dates are unchanged.
func (l *List) SetRenderConfig(cfg RenderConfig) {
	l.cfg = cfg
	l.store.BumpAll()
}

// RenderConfig returns the renderer passthrough config.
func (l *List) RenderConfig() RenderConfig { return l.cfg }

func (l *List) now() time.Time { return l.opts.Now() }
