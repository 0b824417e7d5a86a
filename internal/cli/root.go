package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/uptally/uptally/internal/probe"
)

// DefaultDatabase is where the ledger lives unless overridden by flag or
// config file.
const DefaultDatabase = "/var/lib/uptally/uptally.db"

// RootOptions holds global flags shared by all commands.
type RootOptions struct {
	Database   string
	ConfigPath string
	Graceful   bool
	Quiet      bool
	Verbose    bool
	CSV        bool
	Seconds    bool
	DateFormat string

	// Source supplies observations. Defaults to the live host probe;
	// tests inject a scripted source.
	Source probe.Source
}

// NewRootCommand creates the uptally root command.
//
// Running the root command is the per-boot / periodic invocation: it
// records the current session in the ledger and prints the summary
// report. The list subcommand records too, then prints per-session rows.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{Source: probe.SystemSource{}}

	cmd := &cobra.Command{
		Use:   "uptally",
		Short: "Track and report historical system uptime",
		Long: `uptally keeps a durable ledger of the host's boot sessions and reports
uptime statistics across them.

Invoke it once per boot (and periodically afterwards, e.g. from cron) so
the ledger follows the live session. Every invocation first syncs the
ledger: within the same boot the open record is refreshed in place; after
a restart the previous record is closed and a new one opened.

Example:
  uptally
  uptally --db /tmp/uptally.db list -o u -r
  uptally -g --quiet   # annotate a clean shutdown, no output`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(opts.Verbose)
			return applyConfig(cmd, opts)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.Database, "db", DefaultDatabase, "path to the ledger database")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default: user config dir)")
	cmd.PersistentFlags().BoolVarP(&opts.Graceful, "graceful", "g", false, "annotate the pending shutdown as graceful")
	cmd.PersistentFlags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress output (the ledger is still updated)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose diagnostics on stderr")
	cmd.PersistentFlags().BoolVar(&opts.CSV, "csv", false, "machine-readable csv output")
	cmd.PersistentFlags().BoolVarP(&opts.Seconds, "seconds", "s", false, "print durations as raw seconds")
	cmd.PersistentFlags().StringVarP(&opts.DateFormat, "date-format", "d", DefaultDateLayout, "Go layout for dates")

	cmd.AddCommand(NewListCommand(opts))

	return cmd
}

// setupLogging configures slog on stderr; --verbose lifts the level to
// debug. Quiet mode only silences stdout reporting, not diagnostics.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
