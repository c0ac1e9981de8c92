// Package scrolllist is a virtualized list for Bubble Tea. Items have a fixed
// geometry reported by a GeometryFunc, so the list can jump to any offset
// without rendering what lies in between. Only items overlapping the viewport
// are built.
package scrolllist

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/calscroll/pkg/tui/theme"
)

const frameInterval = time.Second / 60

// GeometryFunc returns the extent and starting offset of item index.
type GeometryFunc func(index int) (length, offset int)

// BuilderFunc renders item index.
type BuilderFunc func(index int) string

// IdentityFunc returns a value that changes whenever item index must be
// rebuilt. Items with an unchanged identity are served from cache.
type IdentityFunc func(index int) string

// Options configures a Model.
type Options struct {
	Count        int
	InitialIndex int
	Geometry     GeometryFunc
	Builder      BuilderFunc
	Identity     IdentityFunc

	// OnVisibilityChanged receives the visible indices, in order, whenever
	// they change.
	OnVisibilityChanged func([]int)
	// VisiblePercent is how much of an item must be in view for it to count
	// as visible.
	VisiblePercent int

	ScrollEnabled       bool
	ShowScrollIndicator bool
	ScrollsToTop        bool
	PagingEnabled       bool
	Horizontal          bool

	Keys  KeyMap
	Theme theme.ScrollbarTheme
}

// KeyMap holds the scrolling bindings.
type KeyMap struct {
	LineUp   key.Binding
	LineDown key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
}

// DefaultKeyMap returns vim-style bindings plus arrows and paging keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		LineUp:   key.NewBinding(key.WithKeys("up", "k", "left", "h"), key.WithHelp("↑/k", "scroll up")),
		LineDown: key.NewBinding(key.WithKeys("down", "j", "right", "l"), key.WithHelp("↓/j", "scroll down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d", "space"), key.WithHelp("pgdn", "page down")),
		Top:      key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Bottom:   key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	}
}

type cachedItem struct {
	identity string
	lines    []string
}

type animation struct {
	id     int
	target int
}

type frameMsg struct{ id int }

// Model is the virtualized list. It is driven from a single Bubble Tea
// program; none of its methods are safe for concurrent use.
type Model struct {
	opts Options

	width  int
	height int
	offset int

	initialized bool
	visible     []int
	dispatching bool
	dirty       bool

	anim       *animation
	animSeq    int
	tickQueued bool

	cache map[int]cachedItem

	// collapsed holds the position to restore once an empty viewport grows.
	collapsed *anchor
}

// New constructs a list. Size it with SetSize before it reports visibility.
func New(opts Options) *Model {
	if opts.VisiblePercent <= 0 {
		opts.VisiblePercent = 50
	}
	if opts.Keys.LineDown.Keys() == nil {
		opts.Keys = DefaultKeyMap()
	}
	if opts.Geometry == nil {
		opts.Geometry = func(index int) (int, int) { return 1, index }
	}
	return &Model{
		opts:  opts,
		cache: make(map[int]cachedItem),
	}
}

// Keys returns the active key map.
func (m *Model) Keys() KeyMap { return m.opts.Keys }

// SetSize sets the viewport size. The first non-empty size places the list on
// its initial index and reports visibility. Later sizes keep the item at the
// top of the viewport in place, even when item extents follow the viewport.
func (m *Model) SetSize(width, height int) {
	var at, target anchor
	if m.initialized {
		if m.collapsed != nil {
			at = *m.collapsed
		} else {
			at = m.anchorAt(m.offset)
		}
		if m.anim != nil {
			target = m.anchorAt(m.anim.target)
		}
	}

	m.width = max(width, 0)
	m.height = max(height, 0)
	if m.viewportExtent() <= 0 {
		if m.initialized {
			// Geometry may be meaningless at this size; resolve later.
			m.collapsed = &at
			m.anim = nil
		}
		return
	}
	m.collapsed = nil
	if !m.initialized {
		m.initialized = true
		_, off := m.opts.Geometry(clamp(m.opts.InitialIndex, 0, max(m.opts.Count-1, 0)))
		m.offset = m.clampOffset(off)
		m.notify()
		return
	}
	if m.anim != nil {
		m.anim.target = m.clampOffset(m.offsetOf(target))
	}
	m.setOffset(m.offsetOf(at))
}

// anchor is a position expressed as an item and a distance into it.
type anchor struct {
	index  int
	into   int
	length int
}

func (m *Model) anchorAt(offset int) anchor {
	for i := 0; i < m.opts.Count; i++ {
		length, off := m.opts.Geometry(i)
		if offset < off+length {
			return anchor{index: i, into: max(offset-off, 0), length: length}
		}
	}
	return anchor{index: -1, into: offset}
}

// offsetOf resolves a to an offset under the current geometry, scaling the
// distance into the item when its extent changed.
func (m *Model) offsetOf(a anchor) int {
	if a.index < 0 {
		return a.into
	}
	length, off := m.opts.Geometry(a.index)
	if a.length <= 0 || length == a.length {
		return off + a.into
	}
	return off + a.into*length/a.length
}

// ViewportSize reports the viewport dimensions in cells.
func (m *Model) ViewportSize() (int, int) {
	w := m.width
	if m.opts.ShowScrollIndicator && !m.opts.Horizontal {
		w--
	}
	return max(w, 0), m.height
}

// Offset returns the current scroll offset.
func (m *Model) Offset() int { return m.offset }

// Visible returns the indices last reported visible.
func (m *Model) Visible() []int { return append([]int(nil), m.visible...) }

// ScrollToOffset moves the viewport. Animated scrolls progress on frame
// ticks; collect the tick with Cmd.
func (m *Model) ScrollToOffset(offset int, animated bool) {
	target := m.clampOffset(offset)
	if !animated || !m.initialized {
		m.anim = nil
		m.setOffset(target)
		return
	}
	m.animSeq++
	m.anim = &animation{id: m.animSeq, target: target}
	m.tickQueued = false
}

// ScrollToIndex moves the viewport to the start of item index.
func (m *Model) ScrollToIndex(index int, animated bool) {
	if m.opts.Count == 0 {
		return
	}
	_, off := m.opts.Geometry(clamp(index, 0, m.opts.Count-1))
	m.ScrollToOffset(off, animated)
}

// Cmd returns the pending frame tick of an animated scroll, if any.
func (m *Model) Cmd() tea.Cmd {
	if m.anim == nil || m.tickQueued {
		return nil
	}
	m.tickQueued = true
	id := m.anim.id
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{id: id} })
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd { return nil }

// Update handles scrolling keys, the mouse wheel, sizing and animation frames.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case frameMsg:
		m.step(msg.id)
	case tea.MouseWheelMsg:
		if !m.opts.ScrollEnabled {
			break
		}
		switch msg.Button {
		case tea.MouseWheelUp, tea.MouseWheelLeft:
			m.scrollBy(-m.lineStep())
		case tea.MouseWheelDown, tea.MouseWheelRight:
			m.scrollBy(m.lineStep())
		}
	case tea.KeyPressMsg:
		m.handleKey(msg)
	}
	return m, m.Cmd()
}

func (m *Model) handleKey(msg tea.KeyPressMsg) {
	keys := m.opts.Keys
	switch {
	case key.Matches(msg, keys.Top):
		if m.opts.ScrollsToTop {
			m.ScrollToOffset(0, true)
		}
		return
	case !m.opts.ScrollEnabled:
		return
	case key.Matches(msg, keys.LineUp):
		m.scrollBy(-m.lineStep())
	case key.Matches(msg, keys.LineDown):
		m.scrollBy(m.lineStep())
	case key.Matches(msg, keys.PageUp):
		m.scrollBy(-m.pageStep())
	case key.Matches(msg, keys.PageDown):
		m.scrollBy(m.pageStep())
	case key.Matches(msg, keys.Bottom):
		m.ScrollToOffset(m.contentExtent(), true)
	}
}

func (m *Model) lineStep() int {
	if m.opts.PagingEnabled {
		return m.itemExtentAt(m.offset)
	}
	if m.opts.Horizontal {
		return 2
	}
	return 1
}

func (m *Model) pageStep() int {
	if m.opts.PagingEnabled {
		return m.itemExtentAt(m.offset)
	}
	return max(m.viewportExtent()-1, 1)
}

func (m *Model) scrollBy(delta int) {
	m.anim = nil
	target := m.offset + delta
	if m.opts.PagingEnabled {
		target = m.snap(target, delta)
	}
	m.setOffset(m.clampOffset(target))
}

// snap moves target to the start of the item it lands in, rounding in the
// direction of travel.
func (m *Model) snap(target, delta int) int {
	for i := 0; i < m.opts.Count; i++ {
		length, off := m.opts.Geometry(i)
		if target < off+length {
			if delta > 0 && target > off {
				return off + length
			}
			return off
		}
	}
	return target
}

func (m *Model) itemExtentAt(offset int) int {
	for i := 0; i < m.opts.Count; i++ {
		length, off := m.opts.Geometry(i)
		if offset < off+length {
			return max(length, 1)
		}
	}
	return 1
}

func (m *Model) step(id int) {
	m.tickQueued = false
	if m.anim == nil || m.anim.id != id {
		return
	}
	diff := m.anim.target - m.offset
	if diff == 0 {
		m.anim = nil
		return
	}
	move := diff / 4
	if move == 0 {
		move = diff
	}
	m.setOffset(m.offset + move)
	if m.offset == m.anim.target {
		m.anim = nil
	}
}

func (m *Model) setOffset(offset int) {
	m.offset = m.clampOffset(offset)
	m.notify()
}

// notify reports visibility changes. Changes caused from inside the callback
// are delivered after it returns, in order.
func (m *Model) notify() {
	if !m.initialized {
		return
	}
	if m.dispatching {
		m.dirty = true
		return
	}
	m.dispatching = true
	defer func() { m.dispatching = false }()
	for {
		m.dirty = false
		visible := m.computeVisible()
		if !equalInts(visible, m.visible) {
			m.visible = visible
			if m.opts.OnVisibilityChanged != nil {
				m.opts.OnVisibilityChanged(append([]int(nil), visible...))
			}
		}
		if !m.dirty {
			return
		}
	}
}

// computeVisible lists items showing at least VisiblePercent of themselves,
// or filling at least that share of the viewport.
func (m *Model) computeVisible() []int {
	view := m.viewportExtent()
	if view <= 0 {
		return nil
	}
	start, end := m.offset, m.offset+view
	var out []int
	for i := 0; i < m.opts.Count; i++ {
		length, off := m.opts.Geometry(i)
		if length <= 0 {
			continue
		}
		if off >= end {
			break
		}
		overlap := min(end, off+length) - max(start, off)
		if overlap <= 0 {
			continue
		}
		if overlap*100 >= length*m.opts.VisiblePercent || overlap*100 >= view*m.opts.VisiblePercent {
			out = append(out, i)
		}
	}
	return out
}

func (m *Model) viewportExtent() int {
	w, h := m.ViewportSize()
	if m.opts.Horizontal {
		if m.opts.ShowScrollIndicator {
			h--
		}
		if h <= 0 {
			return 0
		}
		return w
	}
	if w <= 0 {
		return 0
	}
	return h
}

func (m *Model) contentExtent() int {
	if m.opts.Count == 0 {
		return 0
	}
	length, off := m.opts.Geometry(m.opts.Count - 1)
	return off + length
}

func (m *Model) clampOffset(offset int) int {
	return clamp(offset, 0, max(m.contentExtent()-m.viewportExtent(), 0))
}

// View renders the items overlapping the viewport.
func (m *Model) View() string {
	w, h := m.ViewportSize()
	if w <= 0 || h <= 0 {
		return ""
	}
	var body string
	if m.opts.Horizontal {
		body = m.viewHorizontal(w, h)
	} else {
		body = m.viewVertical(w, h)
	}
	if m.opts.ShowScrollIndicator {
		body = m.withIndicator(body, w, h)
	}
	return body
}

func (m *Model) viewVertical(w, h int) string {
	lines := make([]string, 0, h)
	start, end := m.offset, m.offset+h
	for i := 0; i < m.opts.Count && len(lines) < h; i++ {
		length, off := m.opts.Geometry(i)
		if off+length <= start {
			continue
		}
		if off >= end {
			break
		}
		item := m.item(i, length)
		from := max(start-off, 0)
		to := min(end-off, length)
		for _, line := range item[from:to] {
			lines = append(lines, padRight(ansi.Truncate(line, w, ""), w))
		}
	}
	for len(lines) < h {
		lines = append(lines, strings.Repeat(" ", w))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewHorizontal(w, h int) string {
	if m.opts.ShowScrollIndicator {
		h--
	}
	rows := make([]string, h)
	start, end := m.offset, m.offset+w
	for i := 0; i < m.opts.Count; i++ {
		length, off := m.opts.Geometry(i)
		if off+length <= start {
			continue
		}
		if off >= end {
			break
		}
		item := m.item(i, h)
		from := max(start-off, 0)
		to := min(end-off, length)
		for r := 0; r < h; r++ {
			cell := padRight(ansi.Truncate(item[r], length, ""), length)
			rows[r] += ansi.Cut(cell, from, to)
		}
	}
	for r := range rows {
		rows[r] = padRight(rows[r], w)
	}
	return strings.Join(rows, "\n")
}

// item returns exactly n lines for index, building it when its identity
// changed.
func (m *Model) item(index, n int) []string {
	id := ""
	if m.opts.Identity != nil {
		id = m.opts.Identity(index)
		if c, ok := m.cache[index]; ok && c.identity == id && len(c.lines) == n {
			return c.lines
		}
	}
	var lines []string
	if m.opts.Builder != nil {
		lines = strings.Split(m.opts.Builder(index), "\n")
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	lines = lines[:n]
	if m.opts.Identity != nil {
		m.cache[index] = cachedItem{identity: id, lines: lines}
	}
	return lines
}

func (m *Model) withIndicator(body string, w, h int) string {
	content := m.contentExtent()
	view := m.viewportExtent()
	track := h
	if m.opts.Horizontal {
		track = w
	}
	thumb := track
	pos := 0
	if content > view && content > 0 {
		thumb = max(track*view/content, 1)
		pos = (track - thumb) * m.offset / max(content-view, 1)
	}

	thumbGlyph, trackGlyph := "┃", "│"
	if m.opts.Horizontal {
		thumbGlyph, trackGlyph = "━", "─"
	}
	bar := make([]string, track)
	for i := range bar {
		if i >= pos && i < pos+thumb {
			bar[i] = m.opts.Theme.Thumb.Render(thumbGlyph)
		} else {
			bar[i] = m.opts.Theme.Track.Render(trackGlyph)
		}
	}

	if m.opts.Horizontal {
		return body + "\n" + strings.Join(bar, "")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, body, strings.Join(bar, "\n"))
}

func padRight(s string, w int) string {
	if gap := w - ansi.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
