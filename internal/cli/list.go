package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/uptally/uptally/internal/ledger"
	"github.com/uptally/uptally/internal/query"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Order   string
	Reverse bool
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every recorded session",
		Long: `List one row per boot session, oldest first.

The ledger is synced before listing, exactly as the bare invocation does.
Sessions can be reordered by a composite key built from uptime (u),
shutdown kind (s), downtime (d), and kernel label (k); the selected
fields compare as one tuple in that fixed precedence order.

Example:
  uptally list
  uptally list -o u,k
  uptally list -o d -r --csv`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.Order, "order", "o", "", "sort key fields: any of u,s,d,k (comma-separated)")
	cmd.Flags().BoolVarP(&opts.Reverse, "reverse", "r", false, "reverse the final order")

	return cmd
}

func runList(ctx context.Context, opts *ListOptions, w io.Writer) error {
	fields, err := parseOrder(opts.Order)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid order", err)
	}

	snap, err := syncLedger(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	if opts.Quiet {
		return nil
	}

	records := query.Reorder(snap.Records, fields, opts.Reverse)
	f := NewFormatter(opts.RootOptions)
	if opts.CSV {
		return renderListCSV(w, records)
	}
	return renderList(w, records, f)
}

// parseOrder maps the -o flag onto query fields.
func parseOrder(s string) ([]query.Field, error) {
	if s == "" {
		return nil, nil
	}
	var fields []query.Field
	for _, tok := range strings.Split(s, ",") {
		switch strings.TrimSpace(tok) {
		case "u":
			fields = append(fields, query.Uptime)
		case "s":
			fields = append(fields, query.Kind)
		case "d":
			fields = append(fields, query.Downtime)
		case "k":
			fields = append(fields, query.Kernel)
		default:
			return nil, fmt.Errorf("unknown field %q (want u, s, d, or k)", tok)
		}
	}
	return fields, nil
}

func renderList(w io.Writer, records []ledger.Record, f *Formatter) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NO.\tSTARTUP\tUPTIME\tSHUTDOWN\tKIND\tDOWNTIME\tKERNEL")
	for _, r := range records {
		shutdown, kind, downtime := "-", "running", "-"
		if !r.IsOpen() {
			shutdown = f.Date(r.ShutdownEpoch)
			kind = r.ShutdownKind.String()
			downtime = f.Duration(r.Downtime)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Seq,
			f.Date(r.BootEpoch),
			f.Duration(r.Uptime),
			shutdown,
			kind,
			downtime,
			r.Kernel,
		)
	}
	return tw.Flush()
}

func renderListCSV(w io.Writer, records []ledger.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"seq", "boot_epoch", "uptime_seconds", "shutdown_epoch", "shutdown_kind", "downtime_seconds", "kernel_label"}); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.FormatInt(r.Seq, 10),
			strconv.FormatInt(r.BootEpoch, 10),
			fmtFloat(r.Uptime),
			strconv.FormatInt(r.ShutdownEpoch, 10),
			r.ShutdownKind.String(),
			fmtFloat(r.Downtime),
			r.Kernel,
		}
		if r.IsOpen() {
			row[4] = "running"
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
