package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/uptally/uptally/internal/ledger"
	"github.com/uptally/uptally/internal/stats"
)

// runReport is the root invocation: sync the ledger, then print the
// summary report (unless quiet).
func runReport(ctx context.Context, opts *RootOptions, w io.Writer) error {
	snap, err := syncLedger(ctx, opts)
	if err != nil {
		return err
	}
	if opts.Quiet {
		return nil
	}

	sum := stats.Compute(snap.Records)
	f := NewFormatter(opts)
	if opts.CSV {
		return renderSummaryCSV(w, snap, sum)
	}
	renderSummary(w, snap, sum, f)
	return nil
}

func renderSummary(w io.Writer, snap ledger.Snapshot, sum stats.Summary, f *Formatter) {
	if sum.SessionCount == 0 {
		fmt.Fprintln(w, "No sessions recorded yet.")
		return
	}

	first := snap.Records[0]
	tail := snap.Records[len(snap.Records)-1]

	fmt.Fprintf(w, "System startups:    %d  since  %s\n", sum.SessionCount, f.Date(first.BootEpoch))
	fmt.Fprintf(w, "System shutdowns:   %d graceful + %d ungraceful\n", sum.GracefulCount, sum.UngracefulCount)
	fmt.Fprintf(w, "System life:        %s\n", f.Duration(sum.SystemLifetime))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Uptime rate:        %.2f %%\n", sum.UptimeRatio)
	fmt.Fprintf(w, "Downtime rate:      %.2f %%\n", sum.DowntimeRatio)
	fmt.Fprintf(w, "Total uptime:       %s\n", f.Duration(sum.TotalUptime))
	fmt.Fprintf(w, "Total downtime:     %s\n", f.Duration(sum.TotalDowntime))
	fmt.Fprintf(w, "Average uptime:     %s\n", f.Duration(sum.AverageUptime))
	fmt.Fprintf(w, "Average downtime:   %s\n", f.Duration(sum.AverageDowntime))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Current uptime:     %s  since  %s\n", f.Duration(tail.Uptime), f.Date(tail.BootEpoch))
	fmt.Fprintf(w, "Longest uptime:     %s  from  %s\n", f.Duration(sum.LongestUptime.Seconds), f.Date(sum.LongestUptime.Epoch))
	fmt.Fprintf(w, "Shortest uptime:    %s  from  %s\n", f.Duration(sum.ShortestUptime.Seconds), f.Date(sum.ShortestUptime.Epoch))
	if sum.SessionCount > 1 {
		fmt.Fprintf(w, "Longest downtime:   %s  ended  %s\n", f.Duration(sum.LongestDowntime.Seconds), f.Date(sum.LongestDowntime.Epoch))
		fmt.Fprintf(w, "Shortest downtime:  %s  ended  %s\n", f.Duration(sum.ShortestDowntime.Seconds), f.Date(sum.ShortestDowntime.Epoch))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Kernels registered: %d\n", sum.DistinctKernels)
	fmt.Fprintf(w, "Ledger:             %s\n", snap.LedgerID)
}

// renderSummaryCSV emits metric,value rows for scripting.
func renderSummaryCSV(w io.Writer, snap ledger.Snapshot, sum stats.Summary) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		{"ledger_id", snap.LedgerID},
		{"session_count", strconv.Itoa(sum.SessionCount)},
		{"graceful_count", strconv.Itoa(sum.GracefulCount)},
		{"ungraceful_count", strconv.Itoa(sum.UngracefulCount)},
		{"system_life_seconds", fmtFloat(sum.SystemLifetime)},
		{"uptime_rate_percent", fmtFloat(sum.UptimeRatio)},
		{"downtime_rate_percent", fmtFloat(sum.DowntimeRatio)},
		{"total_uptime_seconds", fmtFloat(sum.TotalUptime)},
		{"total_downtime_seconds", fmtFloat(sum.TotalDowntime)},
		{"average_uptime_seconds", fmtFloat(sum.AverageUptime)},
		{"average_downtime_seconds", fmtFloat(sum.AverageDowntime)},
		{"longest_uptime_seconds", fmtFloat(sum.LongestUptime.Seconds)},
		{"shortest_uptime_seconds", fmtFloat(sum.ShortestUptime.Seconds)},
		{"longest_downtime_seconds", fmtFloat(sum.LongestDowntime.Seconds)},
		{"shortest_downtime_seconds", fmtFloat(sum.ShortestDowntime.Seconds)},
		{"distinct_kernels", strconv.Itoa(sum.DistinctKernels)},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
