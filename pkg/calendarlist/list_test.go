package calendarlist

import (
	"testing"
	"time"

	"tableflip.dev/calscroll/pkg/dateutil"
)

type scrollCall struct {
	value    int
	animated bool
}

type recordingHost struct {
	offsets []scrollCall
	indices []scrollCall
	width   int
	height  int
}

func (h *recordingHost) ScrollToOffset(offset int, animated bool) {
	h.offsets = append(h.offsets, scrollCall{offset, animated})
}

func (h *recordingHost) ScrollToIndex(index int, animated bool) {
	h.indices = append(h.indices, scrollCall{index, animated})
}

func (h *recordingHost) ViewportSize() (int, int) { return h.width, h.height }

func march15() time.Time { return time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC) }

func newSmallList(t *testing.T, visible *[][]dateutil.DateData) (*List, *recordingHost) {
	t.Helper()
	host := &recordingHost{width: 80, height: 24}
	opts := DefaultOptions()
	opts.PastScrollRange = 2
	opts.FutureScrollRange = 2
	opts.Current = "2024-03-15"
	opts.Now = march15
	if visible != nil {
		opts.OnVisibleMonthsChange = func(months []dateutil.DateData) {
			*visible = append(*visible, months)
		}
	}
	return New(opts, host, nil), host
}

func kinds(l *List) string {
	out := make([]byte, 0, l.Len())
	for _, r := range l.Rows() {
		switch r.(type) {
		case Materialized:
			out = append(out, 'M')
		case Placeholder:
			out = append(out, 'p')
		}
	}
	return string(out)
}

func TestNewBuildsSequenceAroundOpenMonth(t *testing.T) {
	l, _ := newSmallList(t, nil)

	if l.Len() != 5 {
		t.Fatalf("expected 5 rows, got %d", l.Len())
	}
	m, ok := l.Row(2).(Materialized)
	if !ok {
		t.Fatalf("expected index 2 to be materialized, got %#v", l.Row(2))
	}
	if !dateutil.SameMonth(m.Date, march15()) {
		t.Fatalf("expected index 2 to hold March 2024, got %s", m.Date)
	}
	p, ok := l.Row(0).(Placeholder)
	if !ok {
		t.Fatalf("expected index 0 to be a placeholder, got %#v", l.Row(0))
	}
	if p.Label != "Jan 2024" {
		t.Fatalf("expected label Jan 2024, got %q", p.Label)
	}
	if got := kinds(l); got != "pMMMp" {
		t.Fatalf("expected initial band pMMMp, got %s", got)
	}
	if got := l.InitialScrollIndex(); got != 1 {
		t.Fatalf("expected initial scroll index 1, got %d", got)
	}
	if got := l.MonthIndex(l.OpenDate()); got != 2 {
		t.Fatalf("expected open month at index 2, got %d", got)
	}
}

func TestNewWithoutPastRangeMaterializesLeadingRows(t *testing.T) {
	opts := DefaultOptions()
	opts.PastScrollRange = 0
	opts.FutureScrollRange = 4
	opts.Now = march15
	l := New(opts, nil, nil)

	if got := kinds(l); got != "MMMpp" {
		t.Fatalf("expected MMMpp, got %s", got)
	}
}

func TestFirstVisibilityCorrectsScrollWithoutNotifying(t *testing.T) {
	var visible [][]dateutil.DateData
	l, host := newSmallList(t, &visible)

	l.OnVisibilityChanged([]int{2})

	if len(host.indices) != 1 || host.indices[0] != (scrollCall{2, false}) {
		t.Fatalf("expected one corrective jump to index 2, got %+v", host.indices)
	}
	if len(visible) != 0 {
		t.Fatalf("expected no visible-months notification, got %+v", visible)
	}
	if got := kinds(l); got != "pMMMp" {
		t.Fatalf("expected pMMMp, got %s", got)
	}
	if !l.Settled() {
		t.Fatalf("expected list to be settled")
	}
}

func TestLaterVisibilityNotifiesAndMovesBand(t *testing.T) {
	var visible [][]dateutil.DateData
	l, host := newSmallList(t, &visible)

	l.OnVisibilityChanged([]int{2})
	l.OnVisibilityChanged([]int{3})

	if len(host.indices) != 1 {
		t.Fatalf("expected only the first notification to jump, got %+v", host.indices)
	}
	if len(visible) != 1 || len(visible[0]) != 1 {
		t.Fatalf("expected one notification with one month, got %+v", visible)
	}
	if got := visible[0][0]; got.Year != 2024 || got.Month != 4 {
		t.Fatalf("expected April 2024, got %+v", got)
	}
	if got := kinds(l); got != "ppMMM" {
		t.Fatalf("expected ppMMM, got %s", got)
	}
}

func TestEmptyVisibilityIsNoop(t *testing.T) {
	var visible [][]dateutil.DateData
	l, host := newSmallList(t, &visible)

	l.OnVisibilityChanged(nil)

	if l.Settled() {
		t.Fatalf("expected empty notification to leave the list unsettled")
	}
	if len(host.indices) != 0 || len(visible) != 0 {
		t.Fatalf("expected no side effects, got jumps=%+v visible=%+v", host.indices, visible)
	}
	if got := kinds(l); got != "pMMMp" {
		t.Fatalf("expected rows untouched, got %s", got)
	}
}

func TestMaterializationStaysBounded(t *testing.T) {
	opts := DefaultOptions()
	opts.Now = march15
	l := New(opts, &recordingHost{}, nil)

	bands := [][]int{{50}, {51}, {10, 11}, {99, 100}, {0}, {40, 41, 42}, {100}}
	for _, band := range bands {
		l.OnVisibilityChanged(band)
		if got, limit := l.Store().MaterializedCount(), len(band)+2; got > limit {
			t.Fatalf("band %v: %d rows materialized, limit %d", band, got, limit)
		}
	}
}

func TestDemoteThenMaterializeKeepsDate(t *testing.T) {
	l, _ := newSmallList(t, nil)
	s := l.Store()

	before := s.Materialize(3).(Materialized)
	s.Demote(3)
	if _, ok := s.Row(3).(Placeholder); !ok {
		t.Fatalf("expected placeholder after demote")
	}
	after := s.Materialize(3).(Materialized)
	if !after.Date.Equal(before.Date) {
		t.Fatalf("expected %s after round trip, got %s", before.Date, after.Date)
	}
	if s.Row(-1) != nil || s.Materialize(5) != nil {
		t.Fatalf("expected out of range indices to be ignored")
	}
}

func TestScrollToMonthOffsets(t *testing.T) {
	l, host := newSmallList(t, nil)

	l.ScrollToMonth("2024-05-01")
	l.ScrollToMonth("2024-01-20")
	l.ScrollToMonth("nonsense")

	want := []scrollCall{{360 * 4, false}, {0, false}, {360 * 2, false}}
	if len(host.offsets) != len(want) {
		t.Fatalf("expected %d scrolls, got %+v", len(want), host.offsets)
	}
	for i, w := range want {
		if host.offsets[i] != w {
			t.Fatalf("scroll %d: expected %+v, got %+v", i, w, host.offsets[i])
		}
	}
	if l.MonthIndex("2024-05-01") != 4 || l.MonthIndex("2024-05-31") != 4 {
		t.Fatalf("expected May 2024 at index 4")
	}
}

func TestScrollToDayAddsWeekRows(t *testing.T) {
	l, host := newSmallList(t, nil)

	l.ScrollToDay(march15(), 0, true)
	l.ScrollToDay("2024-03-15", 10, false)

	if len(host.offsets) != 2 {
		t.Fatalf("expected 2 scrolls, got %+v", host.offsets)
	}
	if got := host.offsets[0]; got != (scrollCall{360*2 + 46*2, true}) {
		t.Fatalf("unexpected day scroll %+v", got)
	}
	if got := host.offsets[1]; got != (scrollCall{360*2 + 46*2 + 10, false}) {
		t.Fatalf("unexpected day scroll with extra offset %+v", got)
	}
}

func TestSetCurrentScrollsOnlyAcrossMonths(t *testing.T) {
	opts := DefaultOptions()
	opts.PastScrollRange = 2
	opts.FutureScrollRange = 2
	opts.Current = "2024-03-01"
	host := &recordingHost{}
	l := New(opts, host, nil)

	l.SetCurrent("2024-03-15")
	if len(host.offsets) != 0 {
		t.Fatalf("expected no scroll for same-month change, got %+v", host.offsets)
	}
	if l.OpenDate().Day() != 15 {
		t.Fatalf("expected open date day 15, got %s", l.OpenDate())
	}

	l.SetCurrent("2024-05-10")
	if len(host.offsets) != 1 || host.offsets[0] != (scrollCall{360 * 4, false}) {
		t.Fatalf("expected jump to May, got %+v", host.offsets)
	}
	if !dateutil.SameDate(l.OpenDate(), time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected open date May 10, got %s", l.OpenDate())
	}
	if got := l.MonthIndex(l.OpenDate()); got != 4 {
		t.Fatalf("expected May at index 4, got %d", got)
	}
}

func TestSetCurrentBumpsMaterializedRows(t *testing.T) {
	l, _ := newSmallList(t, nil)

	l.SetCurrent("2024-03-20")
	l.SetRenderConfig(RenderConfig{Marked: map[string]bool{"2024-03-02": true}})

	m := l.Row(2).(Materialized)
	if m.Bump != 2 {
		t.Fatalf("expected bump count 2, got %d", m.Bump)
	}
	if !dateutil.SameMonth(m.Date, march15()) {
		t.Fatalf("expected bump to keep date, got %s", m.Date)
	}
	if _, ok := l.Row(0).(Placeholder); !ok {
		t.Fatalf("expected placeholders to stay placeholders")
	}
}

func TestItemLayoutUsesFixedExtent(t *testing.T) {
	l, _ := newSmallList(t, nil)
	if got := l.ItemLayout(3); got != (Layout{Length: 360, Offset: 1080, Index: 3}) {
		t.Fatalf("unexpected layout %+v", got)
	}

	opts := DefaultOptions()
	opts.Horizontal = true
	opts.Now = march15
	h := New(opts, &recordingHost{width: 72}, nil)
	if got := h.ItemLayout(2); got != (Layout{Length: 72, Offset: 144, Index: 2}) {
		t.Fatalf("unexpected horizontal layout %+v", got)
	}
	if h.Key(2) != "2" {
		t.Fatalf("expected key to be the index")
	}
}

func TestRenderItemDelegatesBothForms(t *testing.T) {
	l, _ := newSmallList(t, nil)

	var gotDates []*time.Time
	var gotLabels []string
	l.SetRenderer(MonthRendererFunc(func(date *time.Time, width, height int, cfg RenderConfig) string {
		gotDates = append(gotDates, date)
		gotLabels = append(gotLabels, cfg.Label)
		if height != 360 || width != 0 {
			t.Fatalf("unexpected size %dx%d", width, height)
		}
		return "ok"
	}))

	if l.RenderItem(0) != "ok" || l.RenderItem(2) != "ok" {
		t.Fatalf("expected renderer output")
	}
	if l.RenderItem(9) != "" {
		t.Fatalf("expected empty output out of range")
	}
	if gotDates[0] != nil || gotLabels[0] != "Jan 2024" {
		t.Fatalf("expected placeholder form for index 0, got %v %q", gotDates[0], gotLabels[0])
	}
	if gotDates[1] == nil || !dateutil.SameMonth(*gotDates[1], march15()) || gotLabels[1] != "" {
		t.Fatalf("expected March for index 2, got %v %q", gotDates[1], gotLabels[1])
	}
}

func TestRenderItemSelectsCurrentDate(t *testing.T) {
	l, _ := newSmallList(t, nil)

	var selected, today time.Time
	l.SetRenderer(MonthRendererFunc(func(date *time.Time, width, height int, cfg RenderConfig) string {
		selected, today = cfg.Selected, cfg.Today
		return ""
	}))

	l.RenderItem(2)
	if !dateutil.SameDate(selected, march15()) || !dateutil.SameDate(today, march15()) {
		t.Fatalf("expected Mar 15 selected and today, got %s and %s", selected, today)
	}

	l.SetCurrent("2024-03-20")
	l.RenderItem(2)
	if !dateutil.SameDate(selected, time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected the new current date selected, got %s", selected)
	}
	if !dateutil.SameDate(today, march15()) {
		t.Fatalf("expected today to stay Mar 15, got %s", today)
	}

	explicit := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	l.SetRenderConfig(RenderConfig{Selected: explicit})
	l.RenderItem(2)
	if !dateutil.SameDate(selected, explicit) {
		t.Fatalf("expected an explicit selection to win, got %s", selected)
	}
}

func TestHostConfig(t *testing.T) {
	opts := DefaultOptions()
	opts.Horizontal = true
	opts.PagingEnabled = true
	opts.Now = march15
	cfg := New(opts, nil, nil).HostConfig()
	if !cfg.PagingEnabled || cfg.ItemCount != 101 || cfg.InitialIndex != 49 || cfg.VisiblePercent != 50 {
		t.Fatalf("unexpected host config %+v", cfg)
	}

	opts.CalendarWidth = 40
	if New(opts, nil, nil).HostConfig().PagingEnabled {
		t.Fatalf("expected explicit calendar width to disable paging")
	}
}
