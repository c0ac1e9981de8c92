package calendarlist

import (
	"strconv"
	"time"
)

// Layout is the fixed geometry of one row.
type Layout struct {
	Length int
	Offset int
	Index  int
}

// RenderConfig is passed through to the month renderer unchanged, apart from
// Label and Bump which describe the row being drawn.
type RenderConfig struct {
	// Label is the placeholder label; set only when rendering a placeholder.
	Label string
	// Bump is the row's render-invalidation counter.
	Bump int

	FirstDay time.Weekday
	// Today defaults to Options.Now.
	Today time.Time
	// Selected defaults to the current date the list is opened on.
	Selected time.Time
	// Marked holds "2006-01-02" keys of days with something on them.
	Marked map[string]bool
}

// MonthRenderer draws a single month. A nil date asks for the placeholder
// form; implementations should render a skeleton rather than fail.
type MonthRenderer interface {
	RenderMonth(date *time.Time, width, height int, cfg RenderConfig) string
}

// MonthRendererFunc adapts a function to MonthRenderer.
type MonthRendererFunc func(date *time.Time, width, height int, cfg RenderConfig) string

// RenderMonth implements MonthRenderer.
func (f MonthRendererFunc) RenderMonth(date *time.Time, width, height int, cfg RenderConfig) string {
	return f(date, width, height, cfg)
}

// ItemLayout returns the geometry of row index. Every row has the same
// extent, so hosts can jump to any index without measuring.
func (l *List) ItemLayout(index int) Layout {
	extent := l.extent()
	return Layout{Length: extent, Offset: extent * index, Index: index}
}

// Key returns the stable identity of row index. It does not change when the
// row is materialized or demoted.
func (l *List) Key(index int) string {
	return strconv.Itoa(index)
}

// RenderItem renders the row at index through the month renderer.
func (l *List) RenderItem(index int) string {
	row := l.store.Row(index)
	if row == nil || l.renderer == nil {
		return ""
	}
	return l.RenderRow(row)
}

// RenderRow renders row through the month renderer.
func (l *List) RenderRow(row Row) string {
	width := 0
	if l.opts.Horizontal && l.opts.PagingEnabled {
		width = l.calendarWidth()
	}
	cfg := l.cfg
	cfg.FirstDay = l.opts.FirstDay
	if cfg.Today.IsZero() {
		cfg.Today = l.now()
	}
	if cfg.Selected.IsZero() {
		cfg.Selected = l.openDate
	}

	switch r := row.(type) {
	case Materialized:
		cfg.Bump = r.Bump
		date := r.Date
		return l.renderer.RenderMonth(&date, width, l.opts.CalendarHeight, cfg)
	case Placeholder:
		cfg.Label = r.Label
		return l.renderer.RenderMonth(nil, width, l.opts.CalendarHeight, cfg)
	}
	return ""
}

func (l *List) extent() int {
	if l.opts.Horizontal {
		return l.calendarWidth()
	}
	return l.opts.CalendarHeight
}

func (l *List) calendarWidth() int {
	if l.opts.CalendarWidth > 0 {
		return l.opts.CalendarWidth
	}
	if l.host != nil {
		if w, _ := l.host.ViewportSize(); w > 0 {
			return w
		}
	}
	return DefaultCalendarWidth
}
