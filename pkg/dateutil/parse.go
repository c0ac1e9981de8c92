package dateutil

import (
	"strings"
	"time"
)

const (
	layoutDay   = "2006-01-02"
	layoutMonth = "2006-01"
	layoutUS    = "January 2006"
)

// DateData is the plain representation of a day handed to callers outside
// the calendar list, e.g. visible-month notifications.
type DateData struct {
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Day        int    `json:"day"`
	Timestamp  int64  `json:"timestamp"`
	DateString string `json:"dateString"`
}

// Time converts d back into a UTC time.
func (d DateData) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// ToData converts t into DateData. The timestamp is the UTC midnight of t's
// calendar day in milliseconds.
func ToData(t time.Time) DateData {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return DateData{
		Year:       t.Year(),
		Month:      int(t.Month()),
		Day:        t.Day(),
		Timestamp:  day.UnixMilli(),
		DateString: day.Format(layoutDay),
	}
}

// Parse resolves a loosely typed date value. Supported inputs are time.Time,
// *time.Time, DateData, *DateData, unix milliseconds (int, int64) and strings
// in "2006-01-02", "2006-01", "January 2006" or RFC 3339 form. Strings without
// a zone are read as UTC. The boolean is false when v cannot be resolved.
func Parse(v any) (time.Time, bool) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return d, !d.IsZero()
	case *time.Time:
		if d == nil || d.IsZero() {
			return time.Time{}, false
		}
		return *d, true
	case DateData:
		if d.Year == 0 && d.Timestamp != 0 {
			return time.UnixMilli(d.Timestamp).UTC(), true
		}
		if d.Year == 0 {
			return time.Time{}, false
		}
		return d.Time(), true
	case *DateData:
		if d == nil {
			return time.Time{}, false
		}
		return Parse(*d)
	case int64:
		return time.UnixMilli(d).UTC(), true
	case int:
		return time.UnixMilli(int64(d)).UTC(), true
	case string:
		return parseString(d)
	}
	return time.Time{}, false
}

func parseString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{layoutDay, time.RFC3339, layoutMonth, layoutUS, LabelLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseOr resolves v like Parse and falls back to fallback() when v cannot be
// resolved.
func ParseOr(v any, fallback func() time.Time) time.Time {
	if t, ok := Parse(v); ok {
		return t
	}
	if fallback == nil {
		return time.Now()
	}
	return fallback()
}
