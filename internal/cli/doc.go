// Package cli implements the command-line interface for tombacal.
//
// The cli package provides the Cobra-based CLI: the root command runs the
// full pipeline (extraction, then calendar sync), and the fetch, sync, and
// export subcommands run each phase standalone. It coordinates the scraper,
// storage, syncer, and gcal packages; all configuration comes from
// environment variables.
package cli
