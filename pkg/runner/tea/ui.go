// Package teaui runs the calendar list as a full-screen Bubble Tea program.
package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/calscroll/pkg/clock"
	"tableflip.dev/calscroll/pkg/config"
	"tableflip.dev/calscroll/pkg/dateutil"
	"tableflip.dev/calscroll/pkg/logging"
	"tableflip.dev/calscroll/pkg/marks"
	"tableflip.dev/calscroll/pkg/store"
	"tableflip.dev/calscroll/pkg/tui/components/calendar"
	"tableflip.dev/calscroll/pkg/tui/components/calendarlist"
	helpview "tableflip.dev/calscroll/pkg/tui/components/help"
	"tableflip.dev/calscroll/pkg/tui/events"
	"tableflip.dev/calscroll/pkg/tui/theme"
)

const (
	componentID = events.ComponentID("months")

	// DefaultSession is the session name used when none is given.
	DefaultSession = "ui"

	footerHeight = 2
)

// Options configures the UI.
type Options struct {
	Config *config.Config
	// Current overrides today as the current date; any form dateutil.Parse
	// accepts.
	Current any
	// Store, when set, remembers the visible month between runs.
	Store   store.Persistence
	Session string
	// Restore reopens on the month saved in the session.
	Restore bool
	Now     func() time.Time
}

type keyMap struct {
	Quit key.Binding
	Help key.Binding

	months calendarlist.KeyMap
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.months.Today, k.months.NextMonth, k.months.PrevMonth, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.months.Today, k.months.NextMonth, k.months.PrevMonth},
		{k.months.NextCurrent, k.months.PrevCurrent},
		{k.Help, k.Quit},
	}
}

// marksLoadedMsg carries freshly loaded marks.
type marksLoadedMsg struct {
	marked map[string]bool
	err    error
}

// reloadMarksMsg asks the model to reload the ICS files.
type reloadMarksMsg struct{}

// Model is the top-level UI state.
type Model struct {
	opts  Options
	theme theme.Theme

	cal     *calendarlist.Model
	help    help.Model
	helpbox *helpview.Model
	keys    keyMap

	showHelp bool
	width    int
	height   int

	visible  []dateutil.DateData
	startErr error
	marked   int
	status   string
	restore  time.Time
}

// New builds the UI model.
func New(opts Options) (*Model, error) {
	if opts.Config == nil {
		return nil, errors.New("teaui: config required")
	}
	if opts.Session == "" {
		opts.Session = DefaultSession
	}
	th := theme.Default()
	listOpts := opts.Config.ListOptions(opts.Current)
	if opts.Now != nil {
		listOpts.Now = opts.Now
	}

	m := &Model{
		opts:  opts,
		theme: th,
		help:  help.New(),
	}
	if opts.Store != nil && opts.Restore {
		if s, err := opts.Store.Session(context.Background(), opts.Session); err == nil {
			m.restore = s.Month.Time()
			logging.Info("ui: restoring session", "session", opts.Session, "month", dateutil.MonthLabel(m.restore))
		} else if !errors.Is(err, store.ErrNotFound) {
			m.startErr = fmt.Errorf("load session %q: %w", opts.Session, err)
		}
	}

	renderer := &calendar.Renderer{Theme: th.Month, ShowOutsideDays: opts.Config.OutsideDays}
	m.cal = calendarlist.New(calendarlist.Options{
		ID:       componentID,
		List:     listOpts,
		Renderer: renderer,
		Theme:    th,
	})
	m.keys = keyMap{
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		months: m.cal.Keys(),
	}
	m.status = "opened on " + m.cal.Engine().OpenDate().Format("Mon Jan 2 2006")
	return m, nil
}

// Calendar exposes the calendar list component.
func (m *Model) Calendar() *calendarlist.Model { return m.cal }

// Init loads the marks and reports any failure from New.
func (m *Model) Init() tea.Cmd {
	if m.startErr != nil {
		return tea.Batch(m.loadMarks(), events.ErrorCmd(m.startErr))
	}
	return m.loadMarks()
}

func (m *Model) loadMarks() tea.Cmd {
	paths := m.opts.Config.ICS
	if len(paths) == 0 {
		return nil
	}
	engine := m.cal.Engine()
	origin := engine.Store().Origin()
	from, to := marks.Window(origin, engine.Store().PastRange(), engine.Store().FutureRange())
	return func() tea.Msg {
		marked, err := marks.Load(paths, from, to)
		return marksLoadedMsg{marked: marked, err: err}
	}
}

// Update routes messages to the calendar list and handles the app keys.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.cal.SetSize(msg.Width, max(msg.Height-footerHeight, 0))
		if m.helpbox != nil {
			m.helpbox.SetSize(m.overlaySize())
		}
		cmds = append(cmds, m.applyRestore())
		_, cmd := m.cal.Update(nil)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case tea.KeyPressMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.saveSession()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.toggleHelp()
			return m, nil
		case m.showHelp:
			if msg.String() == "esc" {
				m.toggleHelp()
				return m, nil
			}
			_, cmd := m.helpbox.Update(msg)
			return m, cmd
		}

	case events.VisibleMonthsMsg:
		m.visible = msg.Months
		logging.Debug("ui: visible months", "desc", msg.Describe())
		return m, nil

	case events.CurrentDateMsg:
		logging.Info("ui: current date", "desc", msg.Describe())
		m.status = "current date " + msg.Date.Format("Mon Jan 2 2006") + " (" + msg.Source + ")"
		_, cmd := m.cal.Update(msg)
		if m.helpbox != nil {
			m.helpbox.SetLayout(m.helpLayout())
		}
		return m, cmd

	case marksLoadedMsg:
		if msg.err != nil {
			logging.Error("ui: load marks", msg.err)
			m.status = "marks: " + firstLine(msg.err.Error())
		} else {
			m.status = fmt.Sprintf("%d marked days", len(msg.marked))
		}
		m.marked = len(msg.marked)
		_, cmd := m.cal.Update(events.MarksMsg{Marked: msg.marked, Source: "ics"})
		return m, cmd

	case reloadMarksMsg:
		return m, m.loadMarks()

	case events.ErrorMsg:
		logging.Error("ui: error", msg.Err)
		m.status = "error: " + msg.Err.Error()
		return m, nil
	}

	_, cmd := m.cal.Update(msg)
	return m, cmd
}

// applyRestore scrolls to the saved month once the list has settled on its
// initial month.
func (m *Model) applyRestore() tea.Cmd {
	if m.restore.IsZero() || !m.cal.Engine().Settled() {
		return nil
	}
	month := m.restore
	m.restore = time.Time{}
	m.cal.Engine().ScrollToMonth(month)
	return nil
}

func (m *Model) toggleHelp() {
	m.showHelp = !m.showHelp
	if m.showHelp && m.helpbox == nil {
		w, h := m.overlaySize()
		m.helpbox = helpview.New(w, h, m.helpLayout())
	}
}

func (m *Model) helpLayout() helpview.Layout {
	cfg := m.opts.Config
	return helpview.Layout{
		Past:       cfg.Past,
		Future:     cfg.Future,
		Current:    m.cal.Engine().OpenDate().Format("January 2, 2006"),
		Horizontal: cfg.Horizontal,
		Paging:     cfg.Paging,
		ICS:        cfg.ICS,
	}
}

func (m *Model) overlaySize() (int, int) {
	return max(m.width-4, 1), max(m.height-footerHeight-2, 1)
}

// saveSession remembers the first visible month.
func (m *Model) saveSession() {
	if m.opts.Store == nil || len(m.visible) == 0 {
		return
	}
	s := &store.Session{
		Name:    m.opts.Session,
		Month:   dateutil.ToData(dateutil.FirstOfMonth(m.visible[0].Time())),
		Current: dateutil.ToData(m.cal.Engine().OpenDate()),
	}
	if err := m.opts.Store.Store(s); err != nil {
		logging.Error("ui: save session", err, "session", m.opts.Session)
		return
	}
	logging.Info("ui: saved session", "session", s.Name, "month", s.Month.DateString)
}

// View renders the calendar list, or the help overlay, above the footer.
func (m *Model) View() string {
	body := m.cal.View()
	if m.showHelp && m.helpbox != nil {
		box := m.helpbox.View()
		body = lipgloss.Place(m.width, max(m.height-footerHeight, 0), lipgloss.Center, lipgloss.Center, box)
	}
	return body + "\n" + m.footer()
}

func (m *Model) footer() string {
	months := make([]string, 0, len(m.visible))
	for _, d := range m.visible {
		months = append(months, dateutil.MonthLabel(d.Time()))
	}
	label := "…"
	if len(months) > 0 {
		label = strings.Join(months, ", ")
	}
	status := m.theme.Footer.Month.Render(label) + "  " + m.theme.Footer.Status.Render(m.status)
	return status + "\n" + m.theme.Footer.Help.Render(m.help.View(m.keys))
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Run starts the program and the background sources feeding it: the
// midnight clock and, when ICS files are configured, the file watcher.
func Run(ctx context.Context, opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	c, err := clock.New(clock.Midnight, nil, func(now time.Time) {
		p.Send(events.CurrentDateMsg{Date: now, Source: "clock"})
	})
	if err != nil {
		return err
	}
	go c.Run(ctx)

	if paths := opts.Config.ICS; len(paths) > 0 {
		changes, err := marks.Watch(ctx, paths, 200*time.Millisecond)
		if err != nil {
			// Send blocks until the program runs.
			go p.Send(events.ErrorMsg{Err: fmt.Errorf("watch ics: %w", err)})
		} else {
			go func() {
				for range changes {
					p.Send(reloadMarksMsg{})
				}
			}()
		}
	}

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
