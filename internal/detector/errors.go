package detector

import (
	"errors"
	"fmt"
)

// BoundaryError reports a failed commit on the restarted (or first-run)
// path. The session boundary it was about to record cannot be
// reconstructed later, so callers must treat it as fatal and exit
// non-zero. The usual cause is a ledger opened without write privileges.
type BoundaryError struct {
	Err error
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("session boundary not recorded (is the ledger writable?): %v", e.Err)
}

func (e *BoundaryError) Unwrap() error { return e.Err }

// RefreshError reports a failed commit on the not-restarted path. No
// session boundary was missed, only a periodic uptime refresh, so callers
// may log it and continue reporting from a patched in-memory snapshot.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	return fmt.Sprintf("tail refresh not persisted: %v", e.Err)
}

func (e *RefreshError) Unwrap() error { return e.Err }

// IsFatal reports whether the error from Sync must abort the invocation.
// Refresh failures are benign; everything else is not.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var re *RefreshError
	return !errors.As(err, &re)
}
