package calendar

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/nmendoza/tombacal/internal/match"
)

// uidDomain scopes event UIDs to the schedule source so they never collide
// with events from other feeds.
const uidDomain = "promiedos.com.ar"

// Options mirrors the sync event parameters so an exported file carries the
// same titles and windows as the Google events.
type Options struct {
	TeamName string
	Location *time.Location
	Duration time.Duration
	Year     int
}

// GenerateICS renders the records as an iCalendar document. Records without
// a parseable kickoff are skipped; the export is a convenience view of the
// snapshot, not the system of record.
func GenerateICS(records []*match.Record, opts Options) (string, error) {
	year := opts.Year
	if year == 0 {
		year = time.Now().In(opts.Location).Year()
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//tombacal//match schedule//EN")

	added := 0
	for _, rec := range records {
		start, end, err := rec.Window(year, opts.Location, opts.Duration)
		if err != nil {
			continue
		}

		ev := cal.AddEvent(fmt.Sprintf("%s@%s", rec.ID, uidDomain))
		ev.SetDtStampTime(time.Now().UTC())
		ev.SetStartAt(start)
		ev.SetEndAt(end)
		ev.SetSummary(rec.Title(opts.TeamName))
		ev.SetDescription(rec.Description())
		ev.SetStatus(ical.ObjectStatusConfirmed)
		added++
	}

	if added == 0 {
		return "", fmt.Errorf("no records with a usable kickoff to export")
	}

	return cal.Serialize(), nil
}
