// Package config provides centralized configuration loaded from environment
// variables. Shared by every subcommand; loaded once at startup and passed
// into components explicitly so nothing reads the environment at runtime.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// AuthMode selects how the Google Calendar credential is obtained.
type AuthMode string

const (
	// AuthOAuth runs the interactive consent flow with a cached,
	// refresh-capable token file.
	AuthOAuth AuthMode = "oauth"
	// AuthService uses a non-interactive service-account key file.
	AuthService AuthMode = "service"
)

// Config holds every tunable of the pipeline.
type Config struct {
	// Extraction
	TeamURL      string
	TeamName     string
	SnapshotPath string
	ScrapeDelay  time.Duration
	HTTPTimeout  time.Duration

	// Calendar
	CalendarID         string
	CredentialsFile    string
	TokenFile          string
	ServiceAccountFile string
	AuthMode           AuthMode
	Timezone           string
	EventDuration      time.Duration
	ReminderMinutes    int
	EventColorID       string
	DryRun             bool

	// Export
	ICSOutput string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	mode := AuthMode(envOr("GCAL_AUTH_MODE", string(AuthOAuth)))
	if mode != AuthOAuth && mode != AuthService {
		return nil, fmt.Errorf("GCAL_AUTH_MODE must be %q or %q, got %q", AuthOAuth, AuthService, mode)
	}

	return &Config{
		TeamURL:      envOr("TEAM_URL", "https://www.promiedos.com.ar/team/godoy-cruz/ihd"),
		TeamName:     envOr("TEAM_NAME", "Godoy Cruz"),
		SnapshotPath: envOr("OUTPUT_JSON", "matches.json"),
		ScrapeDelay:  time.Duration(envInt("SCRAPE_DELAY_MS", 500)) * time.Millisecond,
		HTTPTimeout:  time.Duration(envInt("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,

		CalendarID:         envOr("CALENDAR_ID", "primary"),
		CredentialsFile:    envOr("CREDENTIALS_FILE", "credentials.json"),
		TokenFile:          envOr("TOKEN_FILE", "token.json"),
		ServiceAccountFile: envOr("SERVICE_ACCOUNT_FILE", "service_account.json"),
		AuthMode:           mode,
		Timezone:           envOr("TIMEZONE", "America/Argentina/Buenos_Aires"),
		EventDuration:      time.Duration(envInt("EVENT_DURATION_HOURS", 2)) * time.Hour,
		ReminderMinutes:    envInt("REMINDER_MINUTES", 60),
		EventColorID:       envOr("EVENT_COLOR_ID", "1"),
		DryRun:             envBool("SYNC_DRY_RUN", false),

		ICSOutput: envOr("ICS_OUTPUT", "matches.ics"),

		LogLevel: envOr("LOG_LEVEL", "INFO"),
	}, nil
}

// Location resolves the configured timezone name.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
