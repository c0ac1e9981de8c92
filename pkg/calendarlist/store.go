package calendarlist

import (
	"strconv"
	"time"

	"tableflip.dev/calscroll/pkg/dateutil"
)

// Store owns the ordered row sequence. All mutation goes through Materialize,
// Demote and Bump; the sequence is never resized after NewStore.
type Store struct {
	origin      time.Time
	pastRange   int
	futureRange int

	labels []string
	rows   []Row
}

// NewStore builds the sequence for pastRange months before and futureRange
// months after origin. Every row is a placeholder except a small band around
// the origin month so the first paint has concrete months to draw.
func NewStore(origin time.Time, pastRange, futureRange int) *Store {
	if pastRange < 0 {
		pastRange = 0
	}
	if futureRange < 0 {
		futureRange = 0
	}
	n := pastRange + futureRange + 1
	s := &Store{
		origin:      origin,
		pastRange:   pastRange,
		futureRange: futureRange,
		labels:      make([]string, n),
		rows:        make([]Row, n),
	}
	for i := 0; i < n; i++ {
		s.labels[i] = dateutil.MonthLabel(s.dateFor(i))
		s.rows[i] = Placeholder{Index: i, Label: s.labels[i]}
	}

	lo, hi := pastRange-1, pastRange+1
	if pastRange == 0 {
		lo, hi = 0, 2
	}
	for i := lo; i <= hi; i++ {
		s.Materialize(i)
	}
	return s
}

// Origin returns the day the range is anchored on; its month sits at index
// PastRange().
func (s *Store) Origin() time.Time { return s.origin }

// PastRange returns the number of months before the origin.
func (s *Store) PastRange() int { return s.pastRange }

// FutureRange returns the number of months after the origin.
func (s *Store) FutureRange() int { return s.futureRange }

// Len returns the number of rows.
func (s *Store) Len() int { return len(s.rows) }

// Row returns the row at index i, or nil when i is out of range.
func (s *Store) Row(i int) Row {
	if !s.inRange(i) {
		return nil
	}
	return s.rows[i]
}

// Rows returns a copy of the sequence.
func (s *Store) Rows() []Row {
	return append([]Row(nil), s.rows...)
}

// MaterializedCount returns how many rows currently carry a date.
func (s *Store) MaterializedCount() int {
	n := 0
	for _, r := range s.rows {
		if _, ok := r.(Materialized); ok {
			n++
		}
	}
	return n
}

// Materialize resolves the row at i to its month. Rows that are already
// materialized are returned unchanged.
func (s *Store) Materialize(i int) Row {
	if !s.inRange(i) {
		return nil
	}
	if m, ok := s.rows[i].(Materialized); ok {
		return m
	}
	m := Materialized{Index: i, Date: s.dateFor(i)}
	s.rows[i] = m
	return m
}

// Demote reverts the row at i to its placeholder label.
func (s *Store) Demote(i int) Row {
	if !s.inRange(i) {
		return nil
	}
	if p, ok := s.rows[i].(Placeholder); ok {
		return p
	}
	p := Placeholder{Index: i, Label: s.labels[i]}
	s.rows[i] = p
	return p
}

// Bump marks a materialized row dirty without changing its date. Placeholders
// are left untouched.
func (s *Store) Bump(i int) Row {
	if !s.inRange(i) {
		return nil
	}
	m, ok := s.rows[i].(Materialized)
	if !ok {
		return s.rows[i]
	}
	m.Bump++
	s.rows[i] = m
	return m
}

// BumpAll bumps every materialized row.
func (s *Store) BumpAll() {
	for i := range s.rows {
		s.Bump(i)
	}
}

func (s *Store) dateFor(i int) time.Time {
	return dateutil.AddMonths(s.origin, i-s.pastRange)
}

func (s *Store) inRange(i int) bool {
	return i >= 0 && i < len(s.rows)
}

func itoa(i int) string { return strconv.Itoa(i) }
