package marks

import (
	"errors"
	"time"

	"tableflip.dev/calscroll/pkg/logging"
)

// Load parses every file in paths and returns the marked days in [from, to].
// Files that fail to parse are reported in the joined error; days from the
// others are still returned.
func Load(paths []string, from, to time.Time) (map[string]bool, error) {
	var (
		events []Event
		errs   []error
	)
	for _, path := range paths {
		evs, err := ParseFile(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		events = append(events, evs...)
	}

	occs, err := Expand(events, from, to, time.Local)
	if err != nil {
		errs = append(errs, err)
	}
	days := Days(occs)
	logging.Info("marks: loaded", "files", len(paths), "events", len(events), "days", len(days))
	return days, errors.Join(errs...)
}
