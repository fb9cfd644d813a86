package gcal

import (
	"context"
	"fmt"

	calendar "google.golang.org/api/calendar/v3"
)

// API is the calendar capability the synchronizer depends on. The live
// implementation talks to Google Calendar; tests and dry runs substitute
// their own.
type API interface {
	// FindByQuery runs the provider's free-text search over the calendar.
	// It is a coarse filter; callers do their own exact matching on the
	// results.
	FindByQuery(ctx context.Context, query string) ([]*calendar.Event, error)

	// Insert creates a new event and returns it with the provider-assigned id.
	Insert(ctx context.Context, ev *calendar.Event) (*calendar.Event, error)

	// Update replaces the event with the given provider id.
	Update(ctx context.Context, eventID string, ev *calendar.Event) (*calendar.Event, error)
}

// Client is the live Google Calendar implementation of API, bound to a single
// calendar.
type Client struct {
	svc        *calendar.Service
	calendarID string
}

// NewClient wraps an authenticated calendar service for the given calendar id.
func NewClient(svc *calendar.Service, calendarID string) *Client {
	return &Client{svc: svc, calendarID: calendarID}
}

// FindByQuery lists events matching the free-text query, expanding recurring
// events into single instances the way description scans expect.
func (c *Client) FindByQuery(ctx context.Context, query string) ([]*calendar.Event, error) {
	res, err := c.svc.Events.List(c.calendarID).Q(query).SingleEvents(true).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("listing events for %q: %w", query, err)
	}
	return res.Items, nil
}

// Insert creates the event on the calendar.
func (c *Client) Insert(ctx context.Context, ev *calendar.Event) (*calendar.Event, error) {
	created, err := c.svc.Events.Insert(c.calendarID, ev).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("inserting event %q: %w", ev.Summary, err)
	}
	return created, nil
}

// Update fully replaces the stored event with the given id.
func (c *Client) Update(ctx context.Context, eventID string, ev *calendar.Event) (*calendar.Event, error) {
	updated, err := c.svc.Events.Update(c.calendarID, eventID, ev).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("updating event %s: %w", eventID, err)
	}
	return updated, nil
}
