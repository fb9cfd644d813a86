package match

import (
	"fmt"
	"time"
)

// kickoffLayout parses "dd/mm/yyyy HH:MM" strings assembled from the source's
// separate date and time fields.
const kickoffLayout = "02/01/2006 15:04"

// Kickoff combines the record's date and time with an explicit year into a
// timezone-aware start time. The source omits the year, so the caller decides
// which one applies; passing it in keeps the inference in one place until the
// source grows an explicit year field.
func (r *Record) Kickoff(year int, loc *time.Location) (time.Time, error) {
	if r.Date == NA || r.Time == NA {
		return time.Time{}, fmt.Errorf("match %s has no usable date/time (%q %q)", r.ID, r.Date, r.Time)
	}
	raw := fmt.Sprintf("%s/%d %s", r.Date, year, r.Time)
	t, err := time.ParseInLocation(kickoffLayout, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing kickoff %q: %w", raw, err)
	}
	return t, nil
}

// Window returns the event start and end times, the end being start plus the
// configured duration.
func (r *Record) Window(year int, loc *time.Location, duration time.Duration) (start, end time.Time, err error) {
	start, err = r.Kickoff(year, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.Add(duration), nil
}
