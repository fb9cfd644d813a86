// Command tombacal fetches a team's upcoming matches from promiedos.com.ar
// and syncs them into Google Calendar.
//
// Usage:
//
//	tombacal          # run the full pipeline: fetch, then sync
//	tombacal fetch    # only fetch matches and write the snapshot
//	tombacal sync     # only sync the existing snapshot to the calendar
//	tombacal export   # write the snapshot as an .ics file
//
// Configuration is read from environment variables; a .env file in the
// working directory is loaded if present.
package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/nmendoza/tombacal/internal/cli"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(cli.ExitError)
	}
}
