package calendarlist

import "time"

// Row is one month slot of the calendar list. It is either a Placeholder or a
// Materialized row; use a type switch to tell them apart.
type Row interface {
	// RowIndex is the fixed position of the row in the full range.
	RowIndex() int
	isRow()
}

// Placeholder is a cheap stand-in row carrying only a precomputed month label.
type Placeholder struct {
	Index int
	Label string
}

// RowIndex implements Row.
func (p Placeholder) RowIndex() int { return p.Index }

func (Placeholder) isRow() {}

// Materialized is a row resolved to a concrete day in its month. Bump is
// incremented whenever the row must re-render without its date changing.
type Materialized struct {
	Index int
	Date  time.Time
	Bump  int
}

// RowIndex implements Row.
func (m Materialized) RowIndex() int { return m.Index }

func (Materialized) isRow() {}

// Identity returns a value that changes whenever the rendered output of the
// row may change. Hosts diffing rows can compare identities instead of rows.
func Identity(r Row) string {
	switch row := r.(type) {
	case Materialized:
		return row.Date.Format("2006-01-02") + "#" + itoa(row.Bump)
	case Placeholder:
		return "label:" + row.Label
	}
	return ""
}
