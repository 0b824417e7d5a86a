// Package query reorders ledger snapshots for listing.
package query

import (
	"sort"

	"github.com/uptally/uptally/internal/ledger"
)

// Field selects one component of the composite sort key.
type Field int

const (
	Uptime Field = iota
	Kind
	Downtime
	Kernel
)

// keyPrecedence is the fixed precedence of selected fields within the
// composite key, independent of the order the caller named them in.
var keyPrecedence = []Field{Uptime, Kind, Downtime, Kernel}

// Reorder returns a sorted copy of the snapshot.
//
// The selected fields form a single tuple key compared in fixed precedence
// order (uptime, shutdown kind, downtime, kernel); it is one combined
// sort, not a stable sort per field. With no fields selected the natural
// seq order applies. The sort is ascending; reverse inverts the final
// order. The input slice is never mutated.
func Reorder(records []ledger.Record, fields []Field, reverse bool) []ledger.Record {
	out := make([]ledger.Record, len(records))
	copy(out, records)

	selected := make(map[Field]bool, len(fields))
	for _, f := range fields {
		selected[f] = true
	}

	sort.SliceStable(out, func(i, j int) bool {
		less := compare(out[i], out[j], selected)
		if reverse {
			return less > 0
		}
		return less < 0
	})
	return out
}

// compare returns -1, 0, or 1 for the composite key of a versus b.
func compare(a, b ledger.Record, selected map[Field]bool) int {
	if len(selected) == 0 {
		return cmpInt64(a.Seq, b.Seq)
	}
	for _, f := range keyPrecedence {
		if !selected[f] {
			continue
		}
		var c int
		switch f {
		case Uptime:
			c = cmpFloat(a.Uptime, b.Uptime)
		case Kind:
			c = cmpInt64(int64(a.ShutdownKind), int64(b.ShutdownKind))
		case Downtime:
			c = cmpFloat(a.Downtime, b.Downtime)
		case Kernel:
			switch {
			case a.Kernel < b.Kernel:
				c = -1
			case a.Kernel > b.Kernel:
				c = 1
			}
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
