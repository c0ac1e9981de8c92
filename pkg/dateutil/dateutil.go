// Package dateutil holds the month and day arithmetic used by the calendar
// list: month offsets, fractional month differences and calendar pages.
package dateutil

import (
	"math"
	"time"
)

// LabelLayout is the layout used for placeholder month labels.
const LabelLayout = "Jan 2006"

// FirstOfMonth returns midnight on the first day of t's month.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysIn returns the number of days in t's month.
func DaysIn(t time.Time) int {
	return FirstOfMonth(t).AddDate(0, 1, -1).Day()
}

// AddMonths adds n months to t. The day is clamped to the target month so that
// Jan 31 + 1 month lands on the last day of February instead of spilling into
// March.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, n, 0)
	day := t.Day()
	if last := DaysIn(target); day > last {
		day = last
	}
	return target.AddDate(0, 0, day-1)
}

// DiffMonths returns the fractional number of months from a to b. Whole months
// come from the calendar fields; the remainder is the leftover duration as a
// fraction of the month it falls in. Both times are compared by wall clock,
// ignoring their locations. Zero times yield NaN.
func DiffMonths(a, b time.Time) float64 {
	if a.IsZero() || b.IsZero() {
		return math.NaN()
	}
	b = time.Date(b.Year(), b.Month(), b.Day(), b.Hour(), b.Minute(), b.Second(), b.Nanosecond(), a.Location())
	whole := (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
	anchor := AddMonths(a, whole)
	rem := b.Sub(anchor)
	if rem == 0 {
		return float64(whole)
	}
	// The remainder is measured against the month it spans.
	monthLen := AddMonths(anchor, 1).Sub(anchor)
	if rem < 0 {
		monthLen = anchor.Sub(AddMonths(anchor, -1))
	}
	return float64(whole) + float64(rem)/float64(monthLen)
}

// SameDate reports whether a and b fall on the same calendar day.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// MonthLabel renders the short "Jan 2006" label for t's month.
func MonthLabel(t time.Time) string {
	return t.Format(LabelLayout)
}

// leadingDays is the number of cells before the 1st on a page that starts on
// firstDay.
func leadingDays(t time.Time, firstDay time.Weekday) int {
	first := FirstOfMonth(t)
	return (int(first.Weekday()) - int(firstDay%7) + 7) % 7
}

// Page returns the calendar page of t's month: every day from the start of
// the week containing the 1st through the end of the week containing the last
// day. The result length is always a multiple of 7.
func Page(t time.Time, firstDay time.Weekday) []time.Time {
	first := FirstOfMonth(t)
	lead := leadingDays(t, firstDay)
	total := lead + DaysIn(t)
	cells := ((total + 6) / 7) * 7

	start := first.AddDate(0, 0, -lead)
	days := make([]time.Time, 0, cells)
	for i := 0; i < cells; i++ {
		days = append(days, start.AddDate(0, 0, i))
	}
	return days
}

// WeekIndex returns the zero-based week row of Page(t, firstDay) holding t.
func WeekIndex(t time.Time, firstDay time.Weekday) int {
	for i, d := range Page(t, firstDay) {
		if SameDate(d, t) {
			return i / 7
		}
	}
	return 0
}

// Weeks returns the number of week rows on t's calendar page.
func Weeks(t time.Time, firstDay time.Weekday) int {
	return (leadingDays(t, firstDay) + DaysIn(t) + 6) / 7
}
