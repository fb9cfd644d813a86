// Package gcal wraps the Google Calendar v3 API behind the small surface the
// synchronizer needs: free-text event search, insert, and update.
//
// Two interchangeable credential flows produce the underlying service: an
// interactive OAuth consent flow with a cached refresh-capable token file,
// and a non-interactive service-account key file. Which one runs is a pure
// configuration choice; both yield the same authenticated handle. A dry-run
// implementation of the same interface logs intended writes without touching
// the calendar.
package gcal
