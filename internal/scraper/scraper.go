package scraper

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/nmendoza/tombacal/internal/logger"
	"github.com/nmendoza/tombacal/internal/match"
)

const (
	// UserAgent mirrors a desktop browser; the schedule source serves the
	// embedded data block only to browser-looking clients.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// nextDataSelector locates the embedded JSON payload on both the team
	// page and the per-match detail pages.
	nextDataSelector = "script#__NEXT_DATA__"

	// MaxMatches caps how many upcoming rows are extracted.
	MaxMatches = 5

	DefaultTimeout = 15 * time.Second
	DefaultDelay   = 500 * time.Millisecond
)

// Scraper fetches a team's schedule page and extracts upcoming matches.
type Scraper struct {
	client  *http.Client
	teamURL string
	baseURL string
	delay   time.Duration
}

// New creates a Scraper for the given team page URL. Detail pages are fetched
// from the same host; delay is the pacing pause between detail fetches.
func New(teamURL string, timeout, delay time.Duration) (*Scraper, error) {
	u, err := url.Parse(teamURL)
	if err != nil {
		return nil, fmt.Errorf("parsing team URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("team URL %q has no scheme or host", teamURL)
	}

	return &Scraper{
		client:  &http.Client{Timeout: timeout},
		teamURL: teamURL,
		baseURL: u.Scheme + "://" + u.Host,
		delay:   delay,
	}, nil
}

// nextData is the embedded payload shape shared by the team and detail pages.
type nextData struct {
	Props struct {
		PageProps struct {
			Data        pageData    `json:"data"`
			InitialData initialData `json:"initialData"`
		} `json:"pageProps"`
	} `json:"props"`
}

type pageData struct {
	Games struct {
		Next struct {
			Rows []scheduleRow `json:"rows"`
		} `json:"next"`
	} `json:"games"`
}

type initialData struct {
	Game struct {
		League struct {
			Name string `json:"name"`
		} `json:"league"`
	} `json:"game"`
}

type scheduleRow struct {
	Game struct {
		ID      match.ID `json:"id"`
		URLName string   `json:"url_name"`
	} `json:"game"`
	Values []keyValue `json:"values"`
	Entity struct {
		Object struct {
			ShortName string `json:"short_name"`
		} `json:"object"`
	} `json:"entity"`
}

type keyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// FetchMatches fetches the schedule and returns up to MaxMatches upcoming
// matches in source order. Any failure on the team page itself is returned as
// an error; failures on individual detail pages degrade that match's
// competition to the sentinel and keep going.
func (s *Scraper) FetchMatches() ([]*match.Record, error) {
	body, err := s.get(s.teamURL)
	if err != nil {
		return nil, fmt.Errorf("fetching team page: %w", err)
	}
	defer body.Close()

	rows, err := parseSchedule(body)
	if err != nil {
		return nil, fmt.Errorf("parsing team page: %w", err)
	}

	if len(rows) > MaxMatches {
		rows = rows[:MaxMatches]
	}

	records := make([]*match.Record, 0, len(rows))
	for i, row := range rows {
		if row.Game.ID == "" {
			logger.Warn("Skipping schedule row without a match id", logger.Fields{
				"row": i,
			})
			continue
		}

		rec := buildRecord(row)

		if row.Game.URLName != "" {
			if i > 0 {
				time.Sleep(s.delay)
			}
			rec.Competition = s.fetchCompetition(row.Game.URLName, row.Game.ID)
		}

		records = append(records, rec)
	}

	return records, nil
}

// buildRecord normalizes one schedule row into a Record. Missing keyed values
// fall back to defined defaults rather than failing the row.
func buildRecord(row scheduleRow) *match.Record {
	opponent := row.Entity.Object.ShortName
	if opponent == "" {
		opponent = match.NA
	}

	return &match.Record{
		ID:          row.Game.ID,
		Date:        valueByKey(row.Values, "date", match.NA),
		Time:        valueByKey(row.Values, "time", match.NA),
		Opponent:    opponent,
		VenueSide:   match.ParseSide(valueByKey(row.Values, "home_away", "L")),
		Competition: match.NA,
	}
}

// valueByKey looks up a value in the row's keyed list, returning fallback
// when the key is absent.
func valueByKey(values []keyValue, key, fallback string) string {
	for _, kv := range values {
		if kv.Key == key {
			return kv.Value
		}
	}
	return fallback
}

// fetchCompetition loads the match detail page and extracts the league name.
// Every failure path returns the sentinel; a missing competition never blocks
// the rest of the extraction.
func (s *Scraper) fetchCompetition(urlName string, id match.ID) string {
	detailURL := fmt.Sprintf("%s/game/%s/%s", s.baseURL, urlName, id)

	body, err := s.get(detailURL)
	if err != nil {
		logger.Warn("Fetching match detail page failed", logger.Fields{
			"match_id": id.String(),
			"url":      detailURL,
		})
		return match.NA
	}
	defer body.Close()

	data, err := extractNextData(body)
	if err != nil {
		logger.Warn("Match detail page has no usable data block", logger.Fields{
			"match_id": id.String(),
		})
		return match.NA
	}

	name := data.Props.PageProps.InitialData.Game.League.Name
	if name == "" {
		return match.NA
	}
	return name
}

// get issues a GET with the browser user agent and returns the body on 200.
func (s *Scraper) get(rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// parseSchedule extracts the upcoming-games rows from the team page HTML.
func parseSchedule(r io.Reader) ([]scheduleRow, error) {
	data, err := extractNextData(r)
	if err != nil {
		return nil, err
	}

	rows := data.Props.PageProps.Data.Games.Next.Rows
	if len(rows) == 0 {
		return nil, fmt.Errorf("no upcoming matches in page data")
	}

	return rows, nil
}

// extractNextData locates the embedded JSON script tag and decodes it.
func extractNextData(r io.Reader) (*nextData, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	sel := doc.Find(nextDataSelector)
	if sel.Length() == 0 {
		return nil, fmt.Errorf("data block %q not found", nextDataSelector)
	}

	var data nextData
	if err := json.Unmarshal([]byte(sel.First().Text()), &data); err != nil {
		return nil, fmt.Errorf("decoding data block: %w", err)
	}

	return &data, nil
}
