package ledger

import (
	"errors"
	"fmt"
)

// Patch returns a copy of records with the tail's live fields overridden by
// the observation. The stored tail can be stale when storage was read-only
// and the periodic refresh did not persist; patching the read keeps
// reporting correct without touching the store.
//
// The input slice is never mutated. An empty ledger patches to nil.
func Patch(records []Record, obs Observation, kind Kind) []Record {
	if len(records) == 0 {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)

	tail := &out[len(out)-1]
	tail.Uptime = obs.Uptime
	tail.ShutdownKind = kind
	tail.Kernel = obs.Kernel
	return out
}

// ErrNoOpenTail is returned by Validate when the ledger's tail record is
// already closed, or when an earlier record is still open.
var ErrNoOpenTail = errors.New("ledger: open record is not the tail")

// Validate checks the structural invariants of a ledger snapshot: records
// are in strictly increasing seq order, and exactly one record, the tail,
// is open. A boot-epoch regression is legal (clock anomaly) and does not
// fail validation.
func Validate(records []Record) error {
	if len(records) == 0 {
		return errors.New("ledger: empty")
	}
	for i, r := range records {
		last := i == len(records)-1
		if i > 0 && r.Seq <= records[i-1].Seq {
			return fmt.Errorf("ledger: seq not increasing at record %d (%d after %d)", i, r.Seq, records[i-1].Seq)
		}
		if last != r.IsOpen() {
			return fmt.Errorf("ledger: record seq=%d: %w", r.Seq, ErrNoOpenTail)
		}
		if !last && r.Downtime == Open {
			return fmt.Errorf("ledger: closed record seq=%d has open downtime", r.Seq)
		}
	}
	return nil
}
