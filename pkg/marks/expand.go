package marks

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"

	"tableflip.dev/calscroll/pkg/dateutil"
	"tableflip.dev/calscroll/pkg/logging"
)

const (
	dayLayout = "2006-01-02"

	maxOccurrencesPerEvent = 5000
)

// Occurrence is one concrete instance of an event.
type Occurrence struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time
	AllDay  bool
}

// Expand returns every occurrence of events overlapping [from, to], with
// recurrences, EXDATEs and RECURRENCE-ID overrides applied. Times are
// converted to loc; nil means time.Local.
func Expand(events []Event, from, to time.Time, loc *time.Location) ([]Occurrence, error) {
	if to.Before(from) {
		return nil, errors.New("marks: range end is before range start")
	}
	if loc == nil {
		loc = time.Local
	}

	overrides := make(map[string][]Event)
	for _, ev := range events {
		if ev.IsOverride() {
			overrides[ev.UID] = append(overrides[ev.UID], ev)
		}
	}

	out := make([]Occurrence, 0)
	for _, ev := range events {
		if ev.IsOverride() {
			continue
		}
		if ev.RRule == "" {
			if overlaps(ev.Start, ev.End, from, to) {
				out = append(out, occurrence(pick(ev, overrides[ev.UID], ev.Start), loc))
			}
			continue
		}
		out = append(out, expandRecurring(ev, overrides[ev.UID], from, to, loc)...)
	}
	return out, nil
}

func expandRecurring(ev Event, overrides []Event, from, to time.Time, loc *time.Location) []Occurrence {
	r, err := rrule.StrToRRule(ev.RRule)
	if err != nil {
		logging.Error("marks: bad RRULE", err, "uid", ev.UID, "rrule", ev.RRule)
		return nil
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	// Widen the window by the event length so instances that started before
	// from but run into it are kept.
	dur := ev.End.Sub(ev.Start)
	starts := set.Between(from.Add(-dur).In(ev.Start.Location()), to.In(ev.Start.Location()), true)
	if len(starts) > maxOccurrencesPerEvent {
		logging.Error("marks: truncated occurrences", errors.New("max occurrences reached"),
			"uid", ev.UID, "cap", maxOccurrencesPerEvent)
		starts = starts[:maxOccurrencesPerEvent]
	}

	out := make([]Occurrence, 0, len(starts))
	for _, start := range starts {
		inst := ev
		inst.Start = start
		inst.End = start.Add(dur)
		out = append(out, occurrence(pick(inst, overrides, start), loc))
	}
	return out
}

// pick returns the override replacing the instance starting at start, or
// base when there is none.
func pick(base Event, overrides []Event, start time.Time) Event {
	for _, ov := range overrides {
		if ov.Recurrence != nil && ov.Recurrence.Equal(start) {
			return ov
		}
	}
	return base
}

func occurrence(ev Event, loc *time.Location) Occurrence {
	o := Occurrence{UID: ev.UID, Summary: ev.Summary, AllDay: ev.AllDay, Start: ev.Start, End: ev.End}
	if !ev.AllDay {
		o.Start = o.Start.In(loc)
		o.End = o.End.In(loc)
	}
	return o
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}

// Days returns the "2006-01-02" keys of every calendar day an occurrence
// touches. An end at midnight does not mark the following day.
func Days(occs []Occurrence) map[string]bool {
	days := make(map[string]bool)
	for _, o := range occs {
		last := o.End
		if last.After(o.Start) && last.Equal(startOfDay(last)) {
			last = last.Add(-time.Nanosecond)
		}
		if last.Before(o.Start) {
			last = o.Start
		}
		for d := startOfDay(o.Start); !d.After(last); d = d.AddDate(0, 0, 1) {
			days[d.Format(dayLayout)] = true
		}
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Window is the time range covered by a list of months around current.
func Window(current time.Time, past, future int) (time.Time, time.Time) {
	first := dateutil.FirstOfMonth(current)
	return first.AddDate(0, -past, 0), first.AddDate(0, future+1, 0)
}
