package calendarlist

import (
	"math"
	"time"

	"tableflip.dev/calscroll/pkg/dateutil"
)

// monthDiff returns the rounded number of months from the range origin to t.
// Unusable targets count as the origin month.
func (l *List) monthDiff(t time.Time) int {
	d := dateutil.DiffMonths(dateutil.FirstOfMonth(l.store.Origin()), dateutil.FirstOfMonth(t))
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return 0
	}
	return int(math.Round(d))
}

// resolve parses v, falling back to the open date.
func (l *List) resolve(v any) time.Time {
	if t, ok := dateutil.Parse(v); ok {
		return t
	}
	return l.openDate
}

// MonthIndex returns the row index holding the month of v.
func (l *List) MonthIndex(v any) int {
	return l.monthDiff(l.resolve(v)) + l.store.PastRange()
}

// InitialScrollIndex is the index the host should start on: one row before
// the open month. The first visibility notification then jumps to the open
// month itself, which makes hosts that skip the preceding row on a direct
// initial index render it.
func (l *List) InitialScrollIndex() int {
	return l.MonthIndex(l.openDate) - 1
}

// MonthOffset returns the scroll offset of the top of v's month.
func (l *List) MonthOffset(v any) int {
	extent := l.extent()
	return extent*l.store.PastRange() + extent*l.monthDiff(l.resolve(v))
}

// DayOffset returns the scroll offset of the week row holding v, plus extra.
// Horizontal lists scroll whole months, so the week row is ignored there.
func (l *List) DayOffset(v any, extra int) int {
	day := l.resolve(v)
	offset := l.MonthOffset(day) + extra
	if !l.opts.Horizontal {
		offset += l.opts.WeekRowHeight * dateutil.WeekIndex(day, l.opts.FirstDay)
	}
	return offset
}

// ScrollToMonth asks the host to jump, unanimated, to the month of v.
func (l *List) ScrollToMonth(v any) {
	l.scrollToOffset(l.MonthOffset(v), false)
}

// ScrollToDay asks the host to scroll to the week row holding v.
func (l *List) ScrollToDay(v any, extra int, animated bool) {
	l.scrollToOffset(l.DayOffset(v, extra), animated)
}

// SetCurrent applies a new current date. Moving to another month scrolls the
// list there; every change bumps the materialized rows. Unparseable input
// means today.
func (l *List) SetCurrent(v any) {
	next := dateutil.ParseOr(v, l.opts.Now)
	if !dateutil.SameMonth(next, l.openDate) {
		l.ScrollToMonth(next)
	}
	l.openDate = next
	l.store.BumpAll()
}

func (l *List) scrollToOffset(offset int, animated bool) {
	if l.host == nil {
		return
	}
	l.host.ScrollToOffset(offset, animated)
}

func (l *List) scrollToIndex(index int, animated bool) {
	if l.host == nil {
		return
	}
	l.host.ScrollToIndex(index, animated)
}
