package marks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var sampleICS = strings.Join([]string{
	"BEGIN:VCALENDAR",
	"VERSION:2.0",
	"PRODID:-//calscroll//test//EN",
	"BEGIN:VEVENT",
	"UID:trip",
	"DTSTART;VALUE=DATE:20240320",
	"DTEND;VALUE=DATE:20240322",
	"SUMMARY:Trip",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:standup",
	"DTSTART:20240304T090000Z",
	"DTEND:20240304T100000Z",
	"RRULE:FREQ=WEEKLY;COUNT=4",
	"EXDATE:20240311T090000Z",
	"SUMMARY:Standup",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:standup",
	"RECURRENCE-ID:20240318T090000Z",
	"DTSTART:20240319T090000Z",
	"DTEND:20240319T100000Z",
	"SUMMARY:Moved standup",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"SUMMARY:No UID",
	"DTSTART:20240305T090000Z",
	"END:VEVENT",
	"END:VCALENDAR",
	"",
}, "\r\n")

func march() (time.Time, time.Time) {
	return time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
}

func TestParse(t *testing.T) {
	events, err := Parse("sample", strings.NewReader(sampleICS))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events (one skipped), got %d", len(events))
	}
	if !events[0].AllDay || events[0].Summary != "Trip" {
		t.Fatalf("unexpected first event %+v", events[0])
	}
	if events[1].RRule != "FREQ=WEEKLY;COUNT=4" || len(events[1].ExDates) != 1 {
		t.Fatalf("unexpected recurring event %+v", events[1])
	}
	if !events[2].IsOverride() {
		t.Fatalf("expected the third event to be an override")
	}
}

func TestExpandAndDays(t *testing.T) {
	events, err := Parse("sample", strings.NewReader(sampleICS))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	from, to := march()
	occs, err := Expand(events, from, to, time.UTC)
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(occs) != 4 {
		t.Fatalf("expected 4 occurrences, got %d: %+v", len(occs), occs)
	}

	days := Days(occs)
	for _, want := range []string{"2024-03-04", "2024-03-19", "2024-03-20", "2024-03-21", "2024-03-25"} {
		if !days[want] {
			t.Fatalf("expected %s to be marked, got %v", want, days)
		}
	}
	for _, not := range []string{"2024-03-11", "2024-03-18", "2024-03-22"} {
		if days[not] {
			t.Fatalf("did not expect %s to be marked", not)
		}
	}
}

func TestExpandRejectsBackwardsRange(t *testing.T) {
	from, to := march()
	if _, err := Expand(nil, to, from, nil); err == nil {
		t.Fatalf("expected an error for a backwards range")
	}
}

func TestLoadReportsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cal.ics")
	if err := os.WriteFile(path, []byte(sampleICS), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	from, to := march()
	days, err := Load([]string{path, filepath.Join(dir, "missing.ics")}, from, to)
	if err == nil {
		t.Fatalf("expected an error for the missing file")
	}
	if !days["2024-03-20"] {
		t.Fatalf("expected days from the readable file, got %v", days)
	}
}

func TestWindow(t *testing.T) {
	from, to := Window(time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC), 2, 1)
	if from.Format(dayLayout) != "2024-01-01" || to.Format(dayLayout) != "2024-05-01" {
		t.Fatalf("unexpected window %s..%s", from, to)
	}
}
