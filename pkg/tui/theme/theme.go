package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Month     MonthTheme
	Scrollbar ScrollbarTheme
	Footer    FooterTheme
}

// MonthTheme styles a single month grid.
type MonthTheme struct {
	Title       lipgloss.Style
	Weekday     lipgloss.Style
	Day         lipgloss.Style
	Outside     lipgloss.Style
	Marked      lipgloss.Style
	Today       lipgloss.Style
	Selected    lipgloss.Style
	Placeholder lipgloss.Style
}

// ScrollbarTheme styles the scroll indicator.
type ScrollbarTheme struct {
	Track lipgloss.Style
	Thumb lipgloss.Style
}

// FooterTheme groups styles used by the bottom status line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Month  lipgloss.Style
}

const (
	foreground = "#d0d0d0"
	background = "#262626"
	accent     = "#5f5fff"
)

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Month: MonthTheme{
			Title:       lipgloss.NewStyle().Bold(true),
			Weekday:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
			Day:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
			Outside:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
			Marked:      lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
			Today:       lipgloss.NewStyle().Underline(true),
			Selected:    lipgloss.NewStyle().Background(lipgloss.Color(accent)).Foreground(lipgloss.Color("0")),
			Placeholder: lipgloss.NewStyle().Foreground(Blend(foreground, background, 0.6)),
		},
		Scrollbar: ScrollbarTheme{
			Track: lipgloss.NewStyle().Foreground(lipgloss.Color("237")),
			Thumb: lipgloss.NewStyle().Foreground(Blend(accent, foreground, 0.3)),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Month:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
		},
	}
}

// Blend mixes two hex colors in Lab space; t=0 is from, t=1 is to. Invalid
// input falls back to from as given.
func Blend(from, to string, t float64) color.Color {
	a, err := colorful.Hex(from)
	if err != nil {
		return lipgloss.Color(from)
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return lipgloss.Color(from)
	}
	return lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
}
