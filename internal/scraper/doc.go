// Package scraper provides HTTP fetching and extraction of a team's upcoming
// matches from promiedos.com.ar.
//
// The scraper fetches the public team page, decodes the JSON payload embedded
// in its __NEXT_DATA__ script tag, and normalizes the "next games" rows into
// match records. For each row it also fetches the match detail page to pick
// up the competition name, pacing those requests with a fixed delay so the
// source is never hammered. A failure on the team page fails the whole
// extraction; a failure on a detail page only costs that match its
// competition field.
package scraper
