package scraper

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/nmendoza/tombacal/internal/match"
)

func loadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/team_page.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func detailPage(league string) string {
	return fmt.Sprintf(`<html><body><script id="__NEXT_DATA__" type="application/json">`+
		`{"props":{"pageProps":{"initialData":{"game":{"league":{"name":%q}}}}}}`+
		`</script></body></html>`, league)
}

// newTestScraper wires a scraper against a test server with zero pacing delay.
func newTestScraper(t *testing.T, srv *httptest.Server) *Scraper {
	t.Helper()
	s, err := New(srv.URL+"/team/godoy-cruz/ihd", DefaultTimeout, 0)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func TestParseSchedule(t *testing.T) {
	rows, err := parseSchedule(strings.NewReader(loadFixture(t)))
	if err != nil {
		t.Fatalf("parseSchedule failed: %v", err)
	}

	if len(rows) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Game.ID != "edcjbjc" {
		t.Errorf("first row id = %q, want %q", first.Game.ID, "edcjbjc")
	}
	if got := valueByKey(first.Values, "date", match.NA); got != "15/03" {
		t.Errorf("first row date = %q, want %q", got, "15/03")
	}
	if first.Entity.Object.ShortName != "River" {
		t.Errorf("first row opponent = %q, want %q", first.Entity.Object.ShortName, "River")
	}
}

func TestParseScheduleNoDataBlock(t *testing.T) {
	html := `<html><body><p>maintenance page</p></body></html>`
	if _, err := parseSchedule(strings.NewReader(html)); err == nil {
		t.Fatal("expected error when data block is missing")
	}
}

func TestParseScheduleMalformedBlock(t *testing.T) {
	html := `<html><body><script id="__NEXT_DATA__">{nope</script></body></html>`
	if _, err := parseSchedule(strings.NewReader(html)); err == nil {
		t.Fatal("expected error for malformed data block")
	}
}

func TestFetchMatches(t *testing.T) {
	fixture := loadFixture(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/team/"):
			fmt.Fprint(w, fixture)
		case strings.HasPrefix(r.URL.Path, "/game/"):
			fmt.Fprint(w, detailPage("Liga Profesional"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	records, err := newTestScraper(t, srv).FetchMatches()
	if err != nil {
		t.Fatalf("FetchMatches failed: %v", err)
	}

	// 7 upcoming rows in the fixture cap at 5 records
	if len(records) != 5 {
		t.Fatalf("expected 5 records, got %d", len(records))
	}

	wantIDs := []match.ID{"edcjbjc", "fgahidd", "hjbecaa", "ibdjfgc", "jcadehb"}
	for i, rec := range records {
		if rec.ID != wantIDs[i] {
			t.Errorf("record %d id = %q, want %q (source order must be kept)", i, rec.ID, wantIDs[i])
		}
		if rec.ID == "" {
			t.Errorf("record %d has empty id", i)
		}
		if rec.Competition != "Liga Profesional" {
			t.Errorf("record %d competition = %q, want %q", i, rec.Competition, "Liga Profesional")
		}
	}

	// Row 3 has no time value in the fixture
	if records[2].Time != match.NA {
		t.Errorf("record 2 time = %q, want %q", records[2].Time, match.NA)
	}
	if records[1].VenueSide != match.Away {
		t.Errorf("record 1 side = %v, want Away", records[1].VenueSide)
	}
	if records[0].VenueSide != match.Home {
		t.Errorf("record 0 side = %v, want Home", records[0].VenueSide)
	}
}

func TestFetchMatchesDetailFailureIsolated(t *testing.T) {
	fixture := loadFixture(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/team/"):
			fmt.Fprint(w, fixture)
		case strings.Contains(r.URL.Path, "boca-vs-godoy-cruz"):
			http.Error(w, "boom", http.StatusInternalServerError)
		case strings.HasPrefix(r.URL.Path, "/game/"):
			fmt.Fprint(w, detailPage("Copa Argentina"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	records, err := newTestScraper(t, srv).FetchMatches()
	if err != nil {
		t.Fatalf("FetchMatches failed: %v", err)
	}

	if len(records) != 5 {
		t.Fatalf("expected 5 records despite one detail failure, got %d", len(records))
	}
	if records[1].Competition != match.NA {
		t.Errorf("failed detail fetch should degrade competition to %q, got %q", match.NA, records[1].Competition)
	}
	if records[0].Competition != "Copa Argentina" {
		t.Errorf("record 0 competition = %q, want %q", records[0].Competition, "Copa Argentina")
	}
	if records[4].Competition != "Copa Argentina" {
		t.Errorf("record 4 competition = %q, want %q", records[4].Competition, "Copa Argentina")
	}
}

func TestFetchMatchesTeamPageDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := newTestScraper(t, srv).FetchMatches(); err == nil {
		t.Fatal("expected error when the team page is unreachable")
	}
}

func TestFetchMatchesDetailLeagueMissing(t *testing.T) {
	fixture := loadFixture(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/team/") {
			fmt.Fprint(w, fixture)
			return
		}
		// Detail page with a data block but no league name
		fmt.Fprint(w, `<html><body><script id="__NEXT_DATA__">{"props":{"pageProps":{"initialData":{"game":{}}}}}</script></body></html>`)
	}))
	defer srv.Close()

	records, err := newTestScraper(t, srv).FetchMatches()
	if err != nil {
		t.Fatalf("FetchMatches failed: %v", err)
	}
	for i, rec := range records {
		if rec.Competition != match.NA {
			t.Errorf("record %d competition = %q, want %q", i, rec.Competition, match.NA)
		}
	}
}

func TestBuildRecordDefaults(t *testing.T) {
	row := scheduleRow{}
	row.Game.ID = "xyz"

	rec := buildRecord(row)
	if rec.Date != match.NA || rec.Time != match.NA {
		t.Errorf("expected sentinel date/time, got %q %q", rec.Date, rec.Time)
	}
	if rec.VenueSide != match.Home {
		t.Errorf("default side = %v, want Home", rec.VenueSide)
	}
	if rec.Opponent != match.NA {
		t.Errorf("default opponent = %q, want %q", rec.Opponent, match.NA)
	}
	if rec.Competition != match.NA {
		t.Errorf("default competition = %q, want %q", rec.Competition, match.NA)
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	if _, err := New("not-a-url", DefaultTimeout, 0); err == nil {
		t.Fatal("expected error for URL without scheme")
	}
}
