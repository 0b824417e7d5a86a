// Package stats derives summary metrics from a ledger snapshot. All
// functions are pure: they consume the patched snapshot and never touch
// storage.
package stats

import (
	"math"

	"github.com/uptally/uptally/internal/ledger"
)

// Extreme is one order-statistic winner: the duration plus enough context
// to identify the session it came from.
type Extreme struct {
	Seconds float64 `json:"seconds"`
	Epoch   int64   `json:"epoch"` // boot epoch for uptime, shutdown epoch for downtime
	Kernel  string  `json:"kernel_label"`
}

// Summary bundles every metric computed from a ledger snapshot.
//
// Durations and percentages are rounded to two decimals so repeated runs
// on unchanged data render identically.
type Summary struct {
	SessionCount    int `json:"session_count"`
	GracefulCount   int `json:"graceful_count"`
	UngracefulCount int `json:"ungraceful_count"`

	TotalUptime    float64 `json:"total_uptime"`
	TotalDowntime  float64 `json:"total_downtime"`
	SystemLifetime float64 `json:"system_lifetime"`

	UptimeRatio   float64 `json:"uptime_ratio"`
	DowntimeRatio float64 `json:"downtime_ratio"`

	AverageUptime   float64 `json:"average_uptime"`
	AverageDowntime float64 `json:"average_downtime"`

	LongestUptime  Extreme `json:"longest_uptime"`
	ShortestUptime Extreme `json:"shortest_uptime"`
	// Downtime extremes cover closed sessions only and are zero when the
	// ledger holds a single session.
	LongestDowntime  Extreme `json:"longest_downtime"`
	ShortestDowntime Extreme `json:"shortest_downtime"`

	DistinctKernels int `json:"distinct_kernels"`
}

// Compute aggregates the snapshot. Records must be in seq order with the
// live tail already patched in. Clock anomalies (non-monotonic boot
// epochs, zero lifetime) skew the numbers but never fail: degenerate
// ratios come back as zero.
func Compute(records []ledger.Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	var s Summary
	s.SessionCount = len(records)

	kernels := make(map[string]struct{}, len(records))
	for i, r := range records {
		s.TotalUptime += r.Uptime
		kernels[r.Kernel] = struct{}{}

		if i == 0 || r.Uptime > s.LongestUptime.Seconds {
			s.LongestUptime = uptimeExtreme(r)
		}
		if i == 0 || r.Uptime < s.ShortestUptime.Seconds {
			s.ShortestUptime = uptimeExtreme(r)
		}

		if r.IsOpen() {
			continue
		}
		if r.ShutdownKind == ledger.Graceful {
			s.GracefulCount++
		}
	}
	s.UngracefulCount = (s.SessionCount - 1) - s.GracefulCount
	s.DistinctKernels = len(kernels)

	first := records[0]
	tail := records[len(records)-1]
	s.SystemLifetime = float64(tail.BootEpoch) + tail.Uptime - float64(first.BootEpoch)
	if s.SessionCount > 1 {
		s.TotalDowntime = s.SystemLifetime - s.TotalUptime
		s.LongestDowntime, s.ShortestDowntime = downtimeExtremes(records)
	}

	if s.SystemLifetime > 0 {
		s.UptimeRatio = 100 * s.TotalUptime / s.SystemLifetime
		s.DowntimeRatio = 100 * s.TotalDowntime / s.SystemLifetime
	}

	s.AverageUptime = s.TotalUptime / float64(s.SessionCount)
	s.AverageDowntime = s.TotalDowntime / float64(s.SessionCount)

	s.round()
	return s
}

func uptimeExtreme(r ledger.Record) Extreme {
	return Extreme{Seconds: r.Uptime, Epoch: r.BootEpoch, Kernel: r.Kernel}
}

// downtimeExtremes scans closed records only, ties resolving to the first
// record in ledger order.
func downtimeExtremes(records []ledger.Record) (longest, shortest Extreme) {
	seen := false
	for _, r := range records {
		if r.IsOpen() {
			continue
		}
		e := Extreme{Seconds: r.Downtime, Epoch: r.ShutdownEpoch, Kernel: r.Kernel}
		if !seen || r.Downtime > longest.Seconds {
			longest = e
		}
		if !seen || r.Downtime < shortest.Seconds {
			shortest = e
		}
		seen = true
	}
	return longest, shortest
}

func (s *Summary) round() {
	for _, f := range []*float64{
		&s.TotalUptime, &s.TotalDowntime, &s.SystemLifetime,
		&s.UptimeRatio, &s.DowntimeRatio,
		&s.AverageUptime, &s.AverageDowntime,
		&s.LongestUptime.Seconds, &s.ShortestUptime.Seconds,
		&s.LongestDowntime.Seconds, &s.ShortestDowntime.Seconds,
	} {
		*f = round2(*f)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
