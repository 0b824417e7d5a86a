// Package detector implements the restart-detection state machine: given
// the stored tail and a fresh observation it decides whether the host is
// still in the same boot or has restarted, and applies the matching store
// mutation.
package detector

import (
	"context"
	"fmt"
	"math"

	"github.com/uptally/uptally/internal/ledger"
)

// Store is the slice of the session store the detector mutates.
// Implemented by *store.Store.
type Store interface {
	Tail(ctx context.Context) (ledger.Record, bool, error)
	Append(ctx context.Context, rec ledger.Record) (int64, error)
	UpdateTail(ctx context.Context, uptime float64, kind ledger.Kind, kernel string) error
	RotateTail(ctx context.Context, shutdownEpoch int64, downtime float64, kind ledger.Kind, next ledger.Record) (int64, error)
}

// Outcome reports which path a Sync invocation took.
type Outcome int

const (
	// Registered means the ledger was empty and the first record was appended.
	Registered Outcome = iota
	// Refreshed means the tail was updated in place (same boot).
	Refreshed
	// Rotated means a restart was detected: the tail was closed and a new
	// open record appended.
	Rotated
)

func (o Outcome) String() string {
	switch o {
	case Registered:
		return "registered"
	case Refreshed:
		return "refreshed"
	case Rotated:
		return "rotated"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Restarted reports whether the observation belongs to a later boot than
// the stored tail.
//
// Within the same boot the observed boot epoch equals the stored one up to
// measurement jitter, so last.BootEpoch + obs.Uptime exceeds obs.BootEpoch
// whenever any uptime at all has accumulated. Across a real restart the
// boot epoch jumps forward by at least the downtime while the fresh uptime
// is small, flipping the inequality. Boot-time drift from tick accounting
// on busy or virtualized hosts is tolerated up to the magnitude of the
// current session's own uptime.
func Restarted(last ledger.Record, obs ledger.Observation) bool {
	return float64(last.BootEpoch)+obs.Uptime < float64(obs.BootEpoch)
}

// EstimatedShutdown returns the last instant the previous boot was
// confirmed alive: its boot epoch plus the uptime recorded on the final
// refresh before the box went down.
func EstimatedShutdown(last ledger.Record) int64 {
	return int64(math.Round(float64(last.BootEpoch) + last.Uptime))
}

// Sync runs one detect-and-mutate cycle against the store.
//
// graceful is the caller's annotation for the shutdown now in waiting (or,
// on the rotated path, for the boot that just ended).
//
// Failure semantics differ per path:
//   - rotated path: a commit failure loses a session boundary permanently,
//     so it surfaces as a *BoundaryError and must be treated as fatal;
//   - refreshed path: only a periodic refresh was missed, so the failure
//     comes back as a *RefreshError the caller may log and absorb,
//     reporting from a patched in-memory snapshot instead.
func Sync(ctx context.Context, st Store, obs ledger.Observation, graceful bool) (Outcome, error) {
	kind := ledger.Ungraceful
	if graceful {
		kind = ledger.Graceful
	}

	last, ok, err := st.Tail(ctx)
	if err != nil {
		return 0, fmt.Errorf("read tail: %w", err)
	}

	if !ok {
		// First run on this host: open the initial session.
		if _, err := st.Append(ctx, openRecord(obs)); err != nil {
			return Registered, &BoundaryError{Err: err}
		}
		return Registered, nil
	}

	if !Restarted(last, obs) {
		if err := st.UpdateTail(ctx, obs.Uptime, kind, obs.Kernel); err != nil {
			return Refreshed, &RefreshError{Err: err}
		}
		return Refreshed, nil
	}

	shutdown := EstimatedShutdown(last)
	downtime := float64(obs.BootEpoch - shutdown)
	if _, err := st.RotateTail(ctx, shutdown, downtime, kind, openRecord(obs)); err != nil {
		return Rotated, &BoundaryError{Err: err}
	}
	return Rotated, nil
}

func openRecord(obs ledger.Observation) ledger.Record {
	return ledger.Record{
		BootEpoch:     obs.BootEpoch,
		Uptime:        obs.Uptime,
		ShutdownEpoch: ledger.Open,
		Downtime:      ledger.Open,
		Kernel:        obs.Kernel,
	}
}
