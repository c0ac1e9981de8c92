// Package calendar renders single month grids for the calendar list.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/calscroll/pkg/calendarlist"
	"tableflip.dev/calscroll/pkg/dateutil"
	"tableflip.dev/calscroll/pkg/tui/theme"
)

const (
	// GridWidth is the natural width of a rendered month: seven two-cell days
	// separated by single spaces.
	GridWidth = 7*2 + 6
	// MinHeight is title + weekday header + six week rows.
	MinHeight = 2 + 6
)

var weekdayNames = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Renderer draws month grids. It implements calendarlist.MonthRenderer.
type Renderer struct {
	Theme theme.MonthTheme
	// ShowOutsideDays renders the neighbouring months' days in the first and
	// last week rows.
	ShowOutsideDays bool
}

// NewRenderer returns a renderer using the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: theme.Default().Month}
}

// RenderMonth implements calendarlist.MonthRenderer. A nil date renders the
// placeholder skeleton titled with cfg.Label. The result always has exactly
// height lines when height > 0.
func (r *Renderer) RenderMonth(date *time.Time, width, height int, cfg calendarlist.RenderConfig) string {
	var lines []string
	if date == nil {
		lines = r.placeholder(cfg)
	} else {
		lines = r.month(*date, cfg)
	}
	return fit(lines, width, height)
}

func (r *Renderer) month(month time.Time, cfg calendarlist.RenderConfig) []string {
	title := month.Format("January 2006")
	lines := []string{
		r.Theme.Title.Render(center(title, GridWidth)),
		r.Theme.Weekday.Render(Header(cfg.FirstDay)),
	}

	page := dateutil.Page(month, cfg.FirstDay)
	for row := 0; row < len(page)/7; row++ {
		cells := make([]string, 0, 7)
		for _, day := range page[row*7 : row*7+7] {
			cells = append(cells, r.day(day, month, cfg))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}

func (r *Renderer) day(day, month time.Time, cfg calendarlist.RenderConfig) string {
	text := fmt.Sprintf("%2d", day.Day())
	if !dateutil.SameMonth(day, month) {
		if !r.ShowOutsideDays {
			return "  "
		}
		return r.Theme.Outside.Render(text)
	}

	style := r.Theme.Day
	if cfg.Marked[day.Format("2006-01-02")] {
		style = r.Theme.Marked
	}
	if !cfg.Today.IsZero() && dateutil.SameDate(day, cfg.Today) {
		style = style.Inherit(r.Theme.Today)
	}
	if !cfg.Selected.IsZero() && dateutil.SameDate(day, cfg.Selected) {
		style = style.Inherit(r.Theme.Selected)
	}
	return style.Render(text)
}

func (r *Renderer) placeholder(cfg calendarlist.RenderConfig) []string {
	skeleton := strings.TrimRight(strings.Repeat("·· ", 7), " ")
	lines := []string{
		r.Theme.Placeholder.Render(center(cfg.Label, GridWidth)),
		r.Theme.Placeholder.Render(Header(cfg.FirstDay)),
	}
	for i := 0; i < 6; i++ {
		lines = append(lines, r.Theme.Placeholder.Render(skeleton))
	}
	return lines
}

// Header returns the weekday header starting on firstDay.
func Header(firstDay time.Weekday) string {
	names := make([]string, 7)
	for i := range names {
		names[i] = weekdayNames[(int(firstDay)+i)%7]
	}
	return strings.Join(names, " ")
}

func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return truncate.String(s, uint(width))
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// fit pads or trims lines to height and, when width > 0, places the grid in
// a block of that width.
func fit(lines []string, width, height int) string {
	if height > 0 {
		for len(lines) < height {
			lines = append(lines, "")
		}
		lines = lines[:height]
	}
	body := strings.Join(lines, "\n")
	if width > 0 {
		body = lipgloss.NewStyle().Width(width).MaxWidth(width).Render(body)
	}
	return body
}
