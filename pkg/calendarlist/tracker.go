package calendarlist

import "tableflip.dev/calscroll/pkg/dateutil"

type phase int

const (
	phaseUninitialized phase = iota
	phaseSettled
)

// haloRows is how many rows on each side of the visible band stay
// materialized.
const haloRows = 1

// tracker turns host visibility notifications into materialization changes.
type tracker struct {
	phase phase
	store *Store

	// correct is called on the first notification with the index the host
	// should really be showing.
	correct func()
	// visible receives the days of the visible band after the first
	// notification.
	visible func([]dateutil.DateData)
}

func (t *tracker) settled() bool { return t.phase == phaseSettled }

func (t *tracker) onVisibilityChanged(indices []int) {
	if len(indices) == 0 {
		return
	}

	first := t.phase == phaseUninitialized
	if first && t.correct != nil {
		t.correct()
	}

	months := make([]dateutil.DateData, 0, len(indices))
	for i := 0; i < t.store.Len(); i++ {
		if !closeTo(i, indices, haloRows) {
			t.store.Demote(i)
			continue
		}
		row := t.store.Materialize(i)
		if first || !closeTo(i, indices, 0) {
			continue
		}
		if m, ok := row.(Materialized); ok {
			months = append(months, dateutil.ToData(m.Date))
		}
	}

	t.phase = phaseSettled
	if !first && t.visible != nil {
		t.visible(months)
	}
}

func closeTo(index int, visible []int, distance int) bool {
	for _, v := range visible {
		d := index - v
		if d < 0 {
			d = -d
		}
		if d <= distance {
			return true
		}
	}
	return false
}
