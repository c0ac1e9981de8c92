// Package help renders the key reference shown over the calendar list.
package help

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/calscroll/pkg/tui/theme"
)

//go:embed help.md
var helpMarkdown string

var helpTemplate = template.Must(template.New("help").Parse(helpMarkdown))

const (
	minWidth  = 32
	minHeight = 8
)

// Layout describes the list the help text talks about.
type Layout struct {
	Past       int
	Future     int
	Current    string
	Horizontal bool
	Paging     bool
	ICS        []string
}

// Model is a scrollable, framed rendering of the help page.
type Model struct {
	layout   Layout
	viewport viewport.Model
	frame    lipgloss.Style

	width  int
	height int
	// wrap is the width the content was last rendered at.
	wrap int
	err  error
}

// New sizes a help overlay for layout. Sizes below 32x8 are raised.
func New(width, height int, layout Layout) *Model {
	vp := viewport.New(viewport.WithWidth(1), viewport.WithHeight(1))
	vp.MouseWheelEnabled = true
	m := &Model{
		layout:   layout,
		viewport: vp,
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Default().Scrollbar.Thumb.GetForeground()),
	}
	m.SetSize(width, height)
	return m
}

func (m *Model) Init() tea.Cmd { return nil }

// Update scrolls the page.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	body := m.viewport.View()
	if m.err != nil {
		body = "help unavailable: " + m.err.Error()
	}
	return m.frame.Width(m.width).Height(m.height).Render(body)
}

// Err is the last rendering failure, if any.
func (m *Model) Err() error { return m.err }

// SetLayout replaces the described layout and renders again.
func (m *Model) SetLayout(layout Layout) {
	m.layout = layout
	m.wrap = 0
	m.render()
}

func (m *Model) SetSize(width, height int) {
	m.width = max(width, minWidth)
	m.height = max(height, minHeight)
	m.viewport.SetWidth(max(m.width-m.frame.GetHorizontalFrameSize(), 1))
	m.viewport.SetHeight(max(m.height-m.frame.GetVerticalFrameSize(), 1))
	m.render()
}

func (m *Model) render() {
	wrap := max(m.viewport.Width(), 10)
	if wrap == m.wrap {
		return
	}

	var src bytes.Buffer
	if err := helpTemplate.Execute(&src, m.layout); err != nil {
		m.err = err
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.err = err
		return
	}
	out, err := r.Render(strings.TrimSpace(src.String()))
	if err != nil {
		m.err = err
		return
	}

	m.err = nil
	m.wrap = wrap
	// Glamour's colors fight the frame; keep the layout only.
	m.viewport.SetContent(ansi.Strip(out))
	m.viewport.GotoTop()
}
