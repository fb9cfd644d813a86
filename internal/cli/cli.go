package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ics "github.com/nmendoza/tombacal/internal/calendar"
	"github.com/nmendoza/tombacal/internal/config"
	"github.com/nmendoza/tombacal/internal/gcal"
	"github.com/nmendoza/tombacal/internal/logger"
	"github.com/nmendoza/tombacal/internal/match"
	"github.com/nmendoza/tombacal/internal/scraper"
	"github.com/nmendoza/tombacal/internal/storage"
	"github.com/nmendoza/tombacal/internal/syncer"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// NewRootCmd creates the root command. Running it without a subcommand
// executes the full pipeline: extraction, then synchronization.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tombacal",
		Short: "Sync a team's upcoming matches into Google Calendar",
		Long: `Fetches a team's upcoming matches from promiedos.com.ar and syncs
them into Google Calendar, creating or updating one event per match.
All configuration comes from environment variables (see .env).`,
		SilenceUsage: true,
		RunE:         runPipeline,
	}

	cmd.AddCommand(newFetchCmd())
	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch upcoming matches and write the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			_, err = runFetch(cfg)
			return err
		},
	}
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Sync the snapshot into Google Calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			return runSync(cmd, cfg)
		},
	}
}

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the snapshot as an iCalendar (.ics) file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := setup()
			if err != nil {
				return err
			}
			return runExport(cfg)
		},
	}
}

// runPipeline is the default command: extraction runs to completion and
// persists its snapshot before synchronization starts.
func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	if _, err := runFetch(cfg); err != nil {
		return err
	}

	return runSync(cmd, cfg)
}

// setup loads configuration and points the default logger at the configured
// level.
func setup() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger.SetDefault(logger.New(logger.ParseLevel(cfg.LogLevel), os.Stderr))

	return cfg, nil
}

// runFetch is the extraction phase: scrape, then persist the snapshot.
// Producing zero matches is a failure of the phase, there is nothing to sync.
func runFetch(cfg *config.Config) ([]*match.Record, error) {
	logger.Info("Fetching matches", logger.Fields{
		"team": cfg.TeamName,
		"url":  cfg.TeamURL,
	})

	sc, err := scraper.New(cfg.TeamURL, cfg.HTTPTimeout, cfg.ScrapeDelay)
	if err != nil {
		return nil, err
	}

	records, err := sc.FetchMatches()
	if err != nil {
		return nil, fmt.Errorf("fetching matches: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no upcoming matches found for %s", cfg.TeamName)
	}

	store, err := storage.New(cfg.SnapshotPath)
	if err != nil {
		return nil, err
	}
	if err := store.Save(records); err != nil {
		return nil, err
	}

	for _, rec := range records {
		logger.Info("Match extracted", logger.Fields{
			"match_id":    rec.ID.String(),
			"date":        rec.Date,
			"time":        rec.Time,
			"opponent":    rec.Opponent,
			"side":        rec.VenueSide.String(),
			"competition": rec.Competition,
		})
	}
	logger.Info("Snapshot written", logger.Fields{
		"path":    store.Path(),
		"matches": len(records),
	})

	return records, nil
}

// runSync is the synchronization phase: read the snapshot, obtain a calendar
// handle, reconcile every record.
func runSync(cmd *cobra.Command, cfg *config.Config) error {
	store, err := storage.New(cfg.SnapshotPath)
	if err != nil {
		return err
	}
	records, err := store.Load()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		logger.Info("Snapshot is empty, nothing to sync", nil)
		return nil
	}

	api, err := calendarHandle(cmd, cfg)
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	s := syncer.New(api, syncer.Options{
		TeamName:        cfg.TeamName,
		Timezone:        cfg.Timezone,
		Location:        loc,
		Duration:        cfg.EventDuration,
		ReminderMinutes: cfg.ReminderMinutes,
		ColorID:         cfg.EventColorID,
	})

	result := s.Sync(cmd.Context(), records)
	writeSummary(os.Stdout, result)

	return nil
}

// calendarHandle produces the calendar API implementation: a dry-run stub or
// the live authenticated client.
func calendarHandle(cmd *cobra.Command, cfg *config.Config) (gcal.API, error) {
	if cfg.DryRun {
		logger.Info("Dry run, calendar will not be modified", nil)
		return gcal.NewDryRun(), nil
	}

	logger.Info("Authenticating with Google Calendar", logger.Fields{
		"auth_mode":   string(cfg.AuthMode),
		"calendar_id": cfg.CalendarID,
	})

	svc, err := gcal.NewService(cmd.Context(), cfg)
	if err != nil {
		return nil, fmt.Errorf("authenticating: %w", err)
	}
	return gcal.NewClient(svc, cfg.CalendarID), nil
}

// runExport renders the snapshot as an iCalendar file.
func runExport(cfg *config.Config) error {
	store, err := storage.New(cfg.SnapshotPath)
	if err != nil {
		return err
	}
	records, err := store.Load()
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	data, err := ics.GenerateICS(records, ics.Options{
		TeamName: cfg.TeamName,
		Location: loc,
		Duration: cfg.EventDuration,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(cfg.ICSOutput, []byte(data), 0644); err != nil {
		return fmt.Errorf("writing ICS file: %w", err)
	}

	logger.Info("ICS file written", logger.Fields{
		"path":    cfg.ICSOutput,
		"matches": len(records),
	})
	return nil
}
