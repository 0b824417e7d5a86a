package testutil

import (
	"context"

	"github.com/uptally/uptally/internal/ledger"
)

// FixedSource is a probe.Source returning a scripted sequence of
// observations.
//
// Each call to Observe returns the next observation in the script; the
// last one repeats once the script is exhausted. This lets a test drive
// the detector through "same boot, uptime advancing" and "rebooted" phases
// deterministically, with no live host involved.
type FixedSource struct {
	script []ledger.Observation
	next   int

	// Err, when set, is returned by every Observe call instead of an
	// observation.
	Err error
}

// NewFixedSource creates a source that replays the given observations.
func NewFixedSource(obs ...ledger.Observation) *FixedSource {
	return &FixedSource{script: obs}
}

// Observe returns the next scripted observation.
func (s *FixedSource) Observe(context.Context) (ledger.Observation, error) {
	if s.Err != nil {
		return ledger.Observation{}, s.Err
	}
	if len(s.script) == 0 {
		return ledger.Observation{}, nil
	}
	obs := s.script[s.next]
	if s.next < len(s.script)-1 {
		s.next++
	}
	return obs, nil
}
