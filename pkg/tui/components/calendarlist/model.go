// Package calendarlist is the Bubble Tea component showing the scrollable run
// of months. It wires the windowing engine to a scrolllist host and the month
// grid renderer.
package calendarlist

import (
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"

	engine "tableflip.dev/calscroll/pkg/calendarlist"
	"tableflip.dev/calscroll/pkg/dateutil"
	"tableflip.dev/calscroll/pkg/tui/components/calendar"
	"tableflip.dev/calscroll/pkg/tui/components/scrolllist"
	"tableflip.dev/calscroll/pkg/tui/events"
	"tableflip.dev/calscroll/pkg/tui/theme"
)

// Options configures the component.
type Options struct {
	ID       events.ComponentID
	List     engine.Options
	Renderer engine.MonthRenderer
	Theme    theme.Theme
}

// KeyMap holds the month navigation bindings.
type KeyMap struct {
	Today       key.Binding
	NextMonth   key.Binding
	PrevMonth   key.Binding
	NextCurrent key.Binding
	PrevCurrent key.Binding
}

// DefaultKeyMap returns the default month navigation bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Today:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		NextMonth:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next month")),
		PrevMonth:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "prev month")),
		NextCurrent: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "current +1 month")),
		PrevCurrent: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "current -1 month")),
	}
}

// Model renders the calendar list.
type Model struct {
	id     events.ComponentID
	engine *engine.List
	list   *scrolllist.Model
	keys   KeyMap

	visible []dateutil.DateData
	pending []tea.Cmd
}

// New constructs the component. The list reports its first visibility once it
// is sized.
func New(opts Options) *Model {
	m := &Model{id: opts.ID, keys: DefaultKeyMap()}

	renderer := opts.Renderer
	if renderer == nil {
		renderer = &calendar.Renderer{Theme: opts.Theme.Month}
	}

	listOpts := opts.List
	notify := listOpts.OnVisibleMonthsChange
	listOpts.OnVisibleMonthsChange = func(months []dateutil.DateData) {
		m.visible = months
		m.pending = append(m.pending, events.VisibleMonthsCmd(m.id, months))
		if notify != nil {
			notify(months)
		}
	}
	m.engine = engine.New(listOpts, nil, renderer)

	hc := m.engine.HostConfig()
	m.list = scrolllist.New(scrolllist.Options{
		Count:        hc.ItemCount,
		InitialIndex: hc.InitialIndex,
		Geometry: func(index int) (int, int) {
			l := m.engine.ItemLayout(index)
			return l.Length, l.Offset
		},
		Builder: m.engine.RenderItem,
		Identity: func(index int) string {
			return m.engine.Key(index) + "/" + engine.Identity(m.engine.Row(index))
		},
		OnVisibilityChanged: m.engine.OnVisibilityChanged,
		VisiblePercent:      hc.VisiblePercent,
		ScrollEnabled:       hc.ScrollEnabled,
		ShowScrollIndicator: hc.ShowScrollIndicator,
		ScrollsToTop:        hc.ScrollsToTop,
		PagingEnabled:       hc.PagingEnabled,
		Horizontal:          hc.Horizontal,
		Theme:               opts.Theme.Scrollbar,
	})
	m.engine.SetHost(m.list)
	return m
}

// Engine exposes the windowing engine.
func (m *Model) Engine() *engine.List { return m.engine }

// Keys returns the month navigation bindings.
func (m *Model) Keys() KeyMap { return m.keys }

// ScrollKeys returns the scrolling bindings of the host list.
func (m *Model) ScrollKeys() scrolllist.KeyMap { return m.list.Keys() }

// VisibleMonths returns the months last reported visible.
func (m *Model) VisibleMonths() []dateutil.DateData {
	return append([]dateutil.DateData(nil), m.visible...)
}

// SetSize sets the viewport size.
func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles month navigation, current date and marks changes, and
// forwards scrolling input to the host list.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case events.CurrentDateMsg:
		m.engine.SetCurrent(msg.Date)
	case events.MarksMsg:
		cfg := m.engine.RenderConfig()
		cfg.Marked = msg.Marked
		m.engine.SetRenderConfig(cfg)
	case tea.KeyPressMsg:
		if cmd, handled := m.handleKey(msg); handled {
			cmds = append(cmds, cmd)
			break
		}
		_, cmd := m.list.Update(msg)
		cmds = append(cmds, cmd)
	default:
		_, cmd := m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, m.list.Cmd())
	cmds = append(cmds, m.pending...)
	m.pending = nil
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Today):
		m.engine.ScrollToDay(m.engine.Options().Now(), 0, true)
	case key.Matches(msg, m.keys.NextMonth):
		m.engine.ScrollToMonth(dateutil.AddMonths(m.anchor(), 1))
	case key.Matches(msg, m.keys.PrevMonth):
		m.engine.ScrollToMonth(dateutil.AddMonths(m.anchor(), -1))
	case key.Matches(msg, m.keys.NextCurrent):
		return events.CurrentDateCmd(dateutil.AddMonths(m.engine.OpenDate(), 1), "key"), true
	case key.Matches(msg, m.keys.PrevCurrent):
		return events.CurrentDateCmd(dateutil.AddMonths(m.engine.OpenDate(), -1), "key"), true
	default:
		return nil, false
	}
	return nil, true
}

// anchor is the first visible month, or the open date before the list has
// reported any.
func (m *Model) anchor() time.Time {
	if len(m.visible) > 0 {
		return m.visible[0].Time()
	}
	if idx := m.list.Visible(); len(idx) > 0 {
		if row, ok := m.engine.Row(idx[0]).(engine.Materialized); ok {
			return row.Date
		}
	}
	return m.engine.OpenDate()
}

// View renders the visible part of the list.
func (m *Model) View() string {
	return m.list.View()
}
