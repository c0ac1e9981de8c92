package events

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/calscroll/pkg/dateutil"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// VisibleMonthsMsg is emitted by the calendar list whenever the months on
// screen change after the list settled on its initial month.
type VisibleMonthsMsg struct {
	Component ComponentID
	Months    []dateutil.DateData
}

// Describe renders the visible months in a human-friendly format for logs.
func (m VisibleMonthsMsg) Describe() string {
	names := make([]string, 0, len(m.Months))
	for _, d := range m.Months {
		names = append(names, dateutil.MonthLabel(d.Time()))
	}
	return fmt.Sprintf(`component:%q months:%q`, m.Component, strings.Join(names, ","))
}

// VisibleMonthsCmd wraps VisibleMonthsMsg into a tea.Cmd.
func VisibleMonthsCmd(component ComponentID, months []dateutil.DateData) tea.Cmd {
	months = append([]dateutil.DateData(nil), months...)
	return func() tea.Msg {
		return VisibleMonthsMsg{Component: component, Months: months}
	}
}

// CurrentDateMsg changes the current date of the calendar list. Source names
// who changed it, e.g. "clock" or "key".
type CurrentDateMsg struct {
	Date   time.Time
	Source string
}

// Describe renders the change for logs.
func (m CurrentDateMsg) Describe() string {
	return fmt.Sprintf(`date:%q source:%q`, m.Date.Format("2006-01-02"), m.Source)
}

// CurrentDateCmd wraps CurrentDateMsg into a tea.Cmd.
func CurrentDateCmd(date time.Time, source string) tea.Cmd {
	return func() tea.Msg {
		return CurrentDateMsg{Date: date, Source: source}
	}
}

// MarksMsg replaces the set of days that have something on them. Keys are
// "2006-01-02" dates.
type MarksMsg struct {
	Marked map[string]bool
	Source string
}

// Describe renders the marks update for logs.
func (m MarksMsg) Describe() string {
	return fmt.Sprintf(`days:%d source:%q`, len(m.Marked), m.Source)
}

// MarksCmd wraps MarksMsg into a tea.Cmd.
func MarksCmd(marked map[string]bool, source string) tea.Cmd {
	return func() tea.Msg {
		return MarksMsg{Marked: marked, Source: source}
	}
}

// ErrorMsg reports a failure from a background command.
type ErrorMsg struct {
	Err error
}

// ErrorCmd wraps err into a tea.Cmd producing ErrorMsg.
func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// Describe renders the error for logs.
func (m ErrorMsg) Describe() string {
	return fmt.Sprintf(`err:%q`, m.Err)
}
