// Package match defines the normalized match record shared between the
// extractor and the calendar synchronizer.
//
// A Record is the unit of the snapshot file: a stable match id plus kickoff
// date/time, opponent, venue side, and competition. Missing source fields
// degrade to the "N/A" sentinel instead of failing extraction; only the id is
// mandatory. The id doubles as the calendar correlation key via the
// "Match ID: {id}" marker embedded in event descriptions.
package match
