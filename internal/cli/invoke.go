package cli

import (
	"context"
	"log/slog"

	"github.com/uptally/uptally/internal/detector"
	"github.com/uptally/uptally/internal/ledger"
	"github.com/uptally/uptally/internal/store"
)

// syncLedger runs one full invocation cycle: observe the host, apply the
// restart detector's mutation, and return the ledger snapshot with the
// live tail patched in.
//
// A failed refresh is absorbed here: the periodic update was lost but no
// session boundary was, so reporting proceeds on the patched snapshot. A
// failed rotation (or first-run append) is fatal - that boundary cannot be
// reconstructed later - and surfaces as an ExitError with a non-zero code.
func syncLedger(ctx context.Context, opts *RootOptions) (ledger.Snapshot, error) {
	obs, err := opts.Source.Observe(ctx)
	if err != nil {
		return ledger.Snapshot{}, WrapExitError(ExitFailure, "observe host", err)
	}
	slog.Debug("observed host", "boot_epoch", obs.BootEpoch, "uptime", obs.Uptime, "kernel", obs.Kernel)

	st, err := store.Open(opts.Database)
	if err != nil {
		return ledger.Snapshot{}, WrapExitError(ExitCommandError, "open ledger", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing ledger", "error", closeErr)
		}
	}()

	kind := ledger.Ungraceful
	if opts.Graceful {
		kind = ledger.Graceful
	}

	outcome, err := detector.Sync(ctx, st, obs, opts.Graceful)
	if err != nil {
		if detector.IsFatal(err) {
			return ledger.Snapshot{}, WrapExitError(ExitFailure, "record session", err)
		}
		slog.Warn("continuing on in-memory snapshot", "error", err)
	}
	slog.Debug("ledger synced", "outcome", outcome)

	snap, err := st.Snapshot(ctx)
	if err != nil {
		return ledger.Snapshot{}, WrapExitError(ExitCommandError, "read ledger", err)
	}

	snap.Records = ledger.Patch(snap.Records, obs, kind)
	if err := ledger.Validate(snap.Records); err != nil {
		// Corruption from out-of-band edits: report what we can anyway.
		slog.Warn("ledger invariant violated", "error", err)
	}
	return snap, nil
}
