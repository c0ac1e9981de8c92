package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestHelpRendersKeys(t *testing.T) {
	m := New(200, 80, Layout{Past: 3, Future: 4, Current: "March 2024"})
	if m.Err() != nil {
		t.Fatalf("render: %v", m.Err())
	}
	out := ansi.Strip(m.View())
	for _, want := range []string{"calscroll", "scroll to today", "top to bottom", "iCalendar files"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in help:\n%s", want, out)
		}
	}
}

func TestHelpListsMarkFiles(t *testing.T) {
	m := New(200, 80, Layout{Horizontal: true, ICS: []string{"work.ics"}})
	out := ansi.Strip(m.View())
	if !strings.Contains(out, "side by side") || !strings.Contains(out, "work.ics") {
		t.Fatalf("expected the layout and files in help:\n%s", out)
	}

	m.SetLayout(Layout{})
	if strings.Contains(ansi.Strip(m.View()), "work.ics") {
		t.Fatalf("expected the files to be gone after SetLayout")
	}
}

func TestHelpMinimumSize(t *testing.T) {
	m := New(5, 2, Layout{})
	lines := strings.Split(m.View(), "\n")
	if len(lines) < minHeight {
		t.Fatalf("expected at least %d lines, got %d", minHeight, len(lines))
	}
}
