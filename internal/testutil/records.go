package testutil

import "github.com/uptally/uptally/internal/ledger"

// ClosedRecord builds a closed session record for test fixtures.
func ClosedRecord(seq, boot int64, uptime float64, shutdown int64, downtime float64, kind ledger.Kind, kernel string) ledger.Record {
	return ledger.Record{
		Seq:           seq,
		BootEpoch:     boot,
		Uptime:        uptime,
		ShutdownEpoch: shutdown,
		ShutdownKind:  kind,
		Downtime:      downtime,
		Kernel:        kernel,
	}
}

// OpenRecord builds an open tail record for test fixtures.
func OpenRecord(seq, boot int64, uptime float64, kernel string) ledger.Record {
	return ledger.Record{
		Seq:           seq,
		BootEpoch:     boot,
		Uptime:        uptime,
		ShutdownEpoch: ledger.Open,
		Downtime:      ledger.Open,
		Kernel:        kernel,
	}
}
