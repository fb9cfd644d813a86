package match

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NA is the sentinel used when a field is absent in the source data.
const NA = "N/A"

// Side indicates whether the tracked team plays at home or away.
type Side string

const (
	Home Side = "Home"
	Away Side = "Away"
)

// Record represents one upcoming match as extracted from the schedule page.
type Record struct {
	ID          ID     `json:"id"`
	Date        string `json:"date"` // dd/mm, year inferred at sync time
	Time        string `json:"time"` // HH:MM local
	Opponent    string `json:"opponent"`
	VenueSide   Side   `json:"venue_side"`
	Competition string `json:"competition"`
}

// ID is a match identifier as emitted by the schedule source. The source is
// inconsistent about whether ids are JSON strings or numbers, so both are
// accepted and normalized to a string.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = ID(n.String())
		return nil
	}
	return fmt.Errorf("match id must be a string or number, got %s", data)
}

func (id ID) String() string { return string(id) }

// ParseSide maps the source's home/away indicator ("L" for local) to a Side.
func ParseSide(indicator string) Side {
	if strings.TrimSpace(indicator) == "L" {
		return Home
	}
	return Away
}

// Title computes the event title with the tracked team listed first when
// playing at home.
func (r *Record) Title(teamName string) string {
	if r.VenueSide == Home {
		return fmt.Sprintf("%s vs %s", teamName, r.Opponent)
	}
	return fmt.Sprintf("%s vs %s", r.Opponent, teamName)
}

// Marker returns the correlation string embedded in calendar event
// descriptions. An event carrying this exact substring belongs to this match.
func (r *Record) Marker() string {
	return Marker(r.ID)
}

// Marker builds the correlation string for an arbitrary match id.
func Marker(id ID) string {
	return "Match ID: " + id.String()
}

// Description returns the calendar event description body.
func (r *Record) Description() string {
	return fmt.Sprintf("Competition: %s\n%s", r.Competition, r.Marker())
}

// Validate reports whether the record can be synchronized at all. Only the
// id is mandatory; every other field degrades to a sentinel upstream.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("record has no match id")
	}
	return nil
}

func (s Side) String() string { return string(s) }
