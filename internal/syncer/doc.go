// Package syncer implements the idempotent create-or-update reconciliation
// between extracted match records and calendar events.
//
// Each record is correlated to at most one calendar event through the
// "Match ID: {id}" marker embedded in event descriptions. The provider's
// free-text search narrows the candidate set; the marker scan makes the
// exact call. Running the same snapshot twice therefore creates nothing the
// second time: every record resolves to its existing event and is updated
// in place. Events are never deleted.
package syncer
