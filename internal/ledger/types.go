package ledger

// Sentinel value for the shutdown fields of an open record.
const Open = -1

// Kind classifies how a session ended.
// The zero value is Ungraceful: a shutdown is assumed unclean unless the
// caller asserted otherwise before the box went down.
type Kind int

const (
	Ungraceful Kind = iota
	Graceful
)

func (k Kind) String() string {
	if k == Graceful {
		return "graceful"
	}
	return "ungraceful"
}

// Record is one boot session, the ledger's unit.
//
// Seq is assigned by the store on append and never reused, even if earlier
// rows are deleted externally. ShutdownEpoch and Downtime hold the Open
// sentinel (-1) until the next boot's invocation detects the restart and
// closes the record.
type Record struct {
	Seq           int64   `json:"seq"`
	BootEpoch     int64   `json:"boot_epoch"`     // seconds since epoch
	Uptime        float64 `json:"uptime_seconds"` // refreshed while open
	ShutdownEpoch int64   `json:"shutdown_epoch"` // -1 while open
	ShutdownKind  Kind    `json:"shutdown_kind"`
	Downtime      float64 `json:"downtime_seconds"` // -1 while open
	Kernel        string  `json:"kernel_label"`
}

// IsOpen reports whether the record is the live, not-yet-closed session.
func (r Record) IsOpen() bool {
	return r.ShutdownEpoch == Open
}

// Observation is a single consistent snapshot from the observation source:
// boot epoch and uptime read close together in time, plus the kernel label
// active for the current session.
type Observation struct {
	BootEpoch int64   `json:"boot_epoch"`
	Uptime    float64 `json:"uptime_seconds"`
	Kernel    string  `json:"kernel_label"`
}

// Snapshot is a full ledger read plus the identity of the ledger it came
// from. Records are in seq order.
type Snapshot struct {
	LedgerID string   `json:"ledger_id"`
	Records  []Record `json:"records"`
}
