package gcal

import (
	"context"
	"fmt"

	calendar "google.golang.org/api/calendar/v3"
)

// DryRun implements API without touching the calendar. Searches come back
// empty, so every record reports as "would create".
type DryRun struct {
	ops int
}

// NewDryRun creates a dry-run calendar handle.
func NewDryRun() *DryRun {
	return &DryRun{}
}

func (d *DryRun) FindByQuery(ctx context.Context, query string) ([]*calendar.Event, error) {
	return nil, nil
}

func (d *DryRun) Insert(ctx context.Context, ev *calendar.Event) (*calendar.Event, error) {
	d.ops++
	fmt.Printf("--- Would create event %d ---\n", d.ops)
	printEvent(ev)
	ev.Id = fmt.Sprintf("dry-run-%d", d.ops)
	return ev, nil
}

func (d *DryRun) Update(ctx context.Context, eventID string, ev *calendar.Event) (*calendar.Event, error) {
	d.ops++
	fmt.Printf("--- Would update event %s ---\n", eventID)
	printEvent(ev)
	ev.Id = eventID
	return ev, nil
}

func printEvent(ev *calendar.Event) {
	fmt.Printf("%s\n%s\n", ev.Summary, ev.Description)
	if ev.Start != nil && ev.End != nil {
		fmt.Printf("%s -> %s (%s)\n\n", ev.Start.DateTime, ev.End.DateTime, ev.Start.TimeZone)
	}
}
