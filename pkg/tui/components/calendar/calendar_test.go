package calendar

import (
	"strings"
	"testing"
	"time"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/calscroll/pkg/calendarlist"
)

func TestRenderMonthHasFixedHeight(t *testing.T) {
	r := NewRenderer()
	month := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	out := r.RenderMonth(&month, 0, 10, calendarlist.RenderConfig{})
	lines := strings.Split(out, "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "March 2024") {
		t.Fatalf("expected title line, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "Su Mo Tu We Th Fr Sa") {
		t.Fatalf("expected weekday header, got %q", lines[1])
	}
	if !strings.Contains(out, "31") {
		t.Fatalf("expected the last day of March:\n%s", out)
	}
	for i, line := range lines {
		if w := ansi.PrintableRuneWidth(line); w > GridWidth {
			t.Fatalf("line %d is %d cells wide: %q", i, w, line)
		}
	}
}

func TestRenderMonthRespectsFirstDay(t *testing.T) {
	r := NewRenderer()
	month := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	out := r.RenderMonth(&month, 0, 0, calendarlist.RenderConfig{FirstDay: time.Monday})
	lines := strings.Split(out, "\n")
	if !strings.Contains(lines[1], "Mo Tu We Th Fr Sa Su") {
		t.Fatalf("expected monday header, got %q", lines[1])
	}
	// March 2024 starts on a Friday: four blank cells before it on a Monday page.
	if got := ansi.PrintableRuneWidth(lines[2]); got != GridWidth {
		t.Fatalf("expected a full first week row, got width %d", got)
	}
	if len(lines) != 2+5 {
		t.Fatalf("expected 5 week rows with monday start, got %d lines", len(lines))
	}
}

func TestRenderPlaceholder(t *testing.T) {
	r := NewRenderer()
	out := r.RenderMonth(nil, 0, 9, calendarlist.RenderConfig{Label: "Jan 2024"})
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Jan 2024") {
		t.Fatalf("expected placeholder label, got %q", lines[0])
	}
	if strings.Contains(xansi.Strip(out), "31") {
		t.Fatalf("expected no day numbers in placeholder:\n%s", out)
	}
}

func TestRenderMonthWidth(t *testing.T) {
	r := NewRenderer()
	month := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	out := r.RenderMonth(&month, 30, 9, calendarlist.RenderConfig{})
	for i, line := range strings.Split(out, "\n") {
		if w := ansi.PrintableRuneWidth(line); w != 30 {
			t.Fatalf("line %d: expected width 30, got %d", i, w)
		}
	}
}

func TestHeader(t *testing.T) {
	if got := Header(time.Saturday); got != "Sa Su Mo Tu We Th Fr" {
		t.Fatalf("unexpected header %q", got)
	}
}
