// Package marks turns iCalendar files into the set of days that have
// something on them, for highlighting in the month grid.
package marks

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"tableflip.dev/calscroll/pkg/logging"
)

// Event is a VEVENT reduced to what day marking needs.
type Event struct {
	Source  string
	UID     string
	Summary string

	Start  time.Time
	End    time.Time
	AllDay bool

	RRule   string
	ExDates []time.Time
	// Recurrence is the RECURRENCE-ID of an overridden instance.
	Recurrence *time.Time
}

// IsOverride reports whether e replaces one instance of a recurring event.
func (e Event) IsOverride() bool { return e.Recurrence != nil }

// ParseFile parses the iCalendar file at path.
func ParseFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("marks: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(path, f)
}

// Parse reads every VEVENT from r. Events that cannot be understood are
// logged and skipped.
func Parse(source string, r io.Reader) ([]Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("marks: parse %s: %w", source, err)
	}

	events := make([]Event, 0)
	for _, ve := range cal.Events() {
		ev, err := parseVEvent(source, ve)
		if err != nil {
			logging.Error("marks: skip vevent", err, "source", source)
			continue
		}
		events = append(events, ev)
	}
	logging.Debug("marks: parsed", "source", source, "events", len(events))
	return events, nil
}

func parseVEvent(source string, ve *ical.VEvent) (Event, error) {
	out := Event{Source: source}

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uid.Value
	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}

	dtstart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtstart == nil {
		return out, errors.New("missing DTSTART")
	}
	out.AllDay = isDate(dtstart)

	start, err := ve.GetStartAt()
	if err != nil {
		return out, fmt.Errorf("DTSTART: %w", err)
	}
	out.Start = start
	if end, err := ve.GetEndAt(); err == nil {
		out.End = end
	}
	if out.End.IsZero() || out.End.Before(out.Start) {
		out.End = out.Start
		if out.AllDay {
			out.End = out.Start.AddDate(0, 0, 1)
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RRule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(part); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}
	if p := ve.GetProperty("RECURRENCE-ID"); p != nil {
		if t, err := parseICSTime(p.Value); err == nil {
			out.Recurrence = &t
		}
	}
	return out, nil
}

// isDate reports whether a DTSTART holds a date rather than a date-time.
func isDate(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// parseICSTime parses the basic DATE, DATE-TIME and UTC DATE-TIME forms.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, time.Local)
	default:
		return time.ParseInLocation("20060102", v, time.Local)
	}
}
