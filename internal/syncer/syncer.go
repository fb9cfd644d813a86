package syncer

import (
	"context"
	"strings"
	"time"

	calendar "google.golang.org/api/calendar/v3"

	"github.com/nmendoza/tombacal/internal/gcal"
	"github.com/nmendoza/tombacal/internal/logger"
	"github.com/nmendoza/tombacal/internal/match"
)

// Options configures a sync run. Location and Timezone must describe the
// same zone; the string form goes on the wire, the Location drives parsing.
type Options struct {
	TeamName        string
	Timezone        string
	Location        *time.Location
	Duration        time.Duration
	ReminderMinutes int
	ColorID         string

	// Year applied to the source's year-less dates. Zero means the current
	// year at run time.
	Year int
}

// Result summarizes a sync run.
type Result struct {
	Created int
	Updated int
	Failed  int
	Total   int
}

// Syncer reconciles match records against calendar events.
type Syncer struct {
	api  gcal.API
	opts Options
}

// New creates a Syncer over the given calendar handle.
func New(api gcal.API, opts Options) *Syncer {
	return &Syncer{api: api, opts: opts}
}

// Sync ensures the calendar holds exactly one event per record. Existing
// events are detected by the marker string embedded in their description and
// fully replaced; everything else is created. A failing record is logged and
// skipped, never aborting the rest of the run. An empty record list performs
// no provider calls at all.
func (s *Syncer) Sync(ctx context.Context, records []*match.Record) *Result {
	result := &Result{Total: len(records)}

	year := s.opts.Year
	if year == 0 {
		year = time.Now().In(s.opts.Location).Year()
	}

	for _, rec := range records {
		if err := s.syncOne(ctx, rec, year, result); err != nil {
			logger.Error("Match not synced", logger.Fields{
				"match_id": rec.ID.String(),
				"opponent": rec.Opponent,
			}, err)
			logger.IncrCounter("events.failed")
			result.Failed++
		}
	}

	return result
}

// syncOne runs the lookup/merge algorithm for a single record.
func (s *Syncer) syncOne(ctx context.Context, rec *match.Record, year int, result *Result) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	ev, err := s.buildEvent(rec, year)
	if err != nil {
		return err
	}

	existingID, err := s.findExisting(ctx, rec)
	if err != nil {
		return err
	}

	if existingID != "" {
		if _, err := s.api.Update(ctx, existingID, ev); err != nil {
			return err
		}
		logger.Info("Event updated", logger.Fields{
			"match_id": rec.ID.String(),
			"title":    ev.Summary,
			"event_id": existingID,
		})
		logger.IncrCounter("events.updated")
		result.Updated++
		return nil
	}

	created, err := s.api.Insert(ctx, ev)
	if err != nil {
		return err
	}
	logger.Info("Event created", logger.Fields{
		"match_id": rec.ID.String(),
		"title":    ev.Summary,
		"event_id": created.Id,
	})
	logger.IncrCounter("events.created")
	result.Created++
	return nil
}

// findExisting resolves the record to a prior event id, if any. The provider
// text search is only a coarse filter; the exact decision is the marker scan
// over the returned descriptions. The first hit in provider order wins; any
// further hits are orphaned duplicates and are left alone.
func (s *Syncer) findExisting(ctx context.Context, rec *match.Record) (string, error) {
	candidates, err := s.api.FindByQuery(ctx, rec.ID.String())
	if err != nil {
		return "", err
	}

	for _, ev := range candidates {
		if strings.Contains(ev.Description, rec.Marker()) {
			return ev.Id, nil
		}
	}
	return "", nil
}

// buildEvent assembles the full event payload for a record.
func (s *Syncer) buildEvent(rec *match.Record, year int) (*calendar.Event, error) {
	start, end, err := rec.Window(year, s.opts.Location, s.opts.Duration)
	if err != nil {
		return nil, err
	}

	return &calendar.Event{
		Summary:     rec.Title(s.opts.TeamName),
		Description: rec.Description(),
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: s.opts.Timezone,
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: s.opts.Timezone,
		},
		ColorId: s.opts.ColorID,
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: int64(s.opts.ReminderMinutes)},
			},
			// UseDefault:false must reach the wire explicitly or the
			// provider keeps its default reminders.
			ForceSendFields: []string{"UseDefault"},
		},
	}, nil
}
