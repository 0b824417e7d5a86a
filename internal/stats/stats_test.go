package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uptally/uptally/internal/ledger"
	"github.com/uptally/uptally/internal/testutil"
)

func TestCompute_TwoSessions(t *testing.T) {
	records := []ledger.Record{
		testutil.ClosedRecord(1, 1000, 500, 1500, 100, ledger.Graceful, "k1"),
		testutil.OpenRecord(2, 1600, 200, "k1"),
	}

	s := Compute(records)

	assert.Equal(t, 2, s.SessionCount)
	assert.Equal(t, 700.0, s.TotalUptime)
	assert.Equal(t, 800.0, s.SystemLifetime, "1600+200-1000")
	assert.Equal(t, 100.0, s.TotalDowntime)
	assert.Equal(t, 87.5, s.UptimeRatio)
	assert.Equal(t, 12.5, s.DowntimeRatio)
	assert.Equal(t, 1, s.GracefulCount)
	assert.Equal(t, 0, s.UngracefulCount)
	assert.Equal(t, 350.0, s.AverageUptime)
	assert.Equal(t, 50.0, s.AverageDowntime)
	assert.Equal(t, 1, s.DistinctKernels)
}

func TestCompute_SingleSession(t *testing.T) {
	s := Compute([]ledger.Record{testutil.OpenRecord(1, 1000, 200, "k1")})

	assert.Equal(t, 1, s.SessionCount)
	assert.Equal(t, 0.0, s.TotalDowntime, "single session has no downtime")
	assert.Equal(t, 200.0, s.TotalUptime)
	assert.Equal(t, 200.0, s.SystemLifetime)
	assert.Equal(t, 100.0, s.UptimeRatio)
	assert.Equal(t, 0, s.GracefulCount)
	assert.Equal(t, 0, s.UngracefulCount)
	assert.Zero(t, s.LongestDowntime, "downtime extremes are absent, not an error")
	assert.Zero(t, s.ShortestDowntime)
}

func TestCompute_Empty(t *testing.T) {
	assert.Zero(t, Compute(nil))
}

func TestCompute_UptimePlusDowntimeIsLifetime(t *testing.T) {
	records := []ledger.Record{
		testutil.ClosedRecord(1, 1000, 500.25, 1500, 99.75, ledger.Ungraceful, "k1"),
		testutil.ClosedRecord(2, 1600, 300.5, 1901, 99.0, ledger.Graceful, "k2"),
		testutil.OpenRecord(3, 2000, 123.25, "k2"),
	}

	s := Compute(records)

	require.Greater(t, s.SessionCount, 1)
	assert.InDelta(t, s.SystemLifetime, s.TotalUptime+s.TotalDowntime, 0.011, "within rounding tolerance")
}

func TestCompute_Extremes(t *testing.T) {
	records := []ledger.Record{
		testutil.ClosedRecord(1, 1000, 500, 1500, 100, ledger.Graceful, "k1"),
		testutil.ClosedRecord(2, 1600, 50, 1650, 350, ledger.Ungraceful, "k2"),
		testutil.OpenRecord(3, 2000, 700, "k3"),
	}

	s := Compute(records)

	assert.Equal(t, Extreme{Seconds: 700, Epoch: 2000, Kernel: "k3"}, s.LongestUptime, "open tail counts for uptime extremes")
	assert.Equal(t, Extreme{Seconds: 50, Epoch: 1600, Kernel: "k2"}, s.ShortestUptime)
	assert.Equal(t, Extreme{Seconds: 350, Epoch: 1650, Kernel: "k2"}, s.LongestDowntime)
	assert.Equal(t, Extreme{Seconds: 100, Epoch: 1500, Kernel: "k1"}, s.ShortestDowntime)
	assert.Equal(t, 3, s.DistinctKernels)
	assert.Equal(t, 1, s.GracefulCount)
	assert.Equal(t, 1, s.UngracefulCount)
}

func TestCompute_ExtremeTiesGoToFirstRecord(t *testing.T) {
	records := []ledger.Record{
		testutil.ClosedRecord(1, 1000, 500, 1500, 100, ledger.Ungraceful, "k1"),
		testutil.ClosedRecord(2, 1600, 500, 2100, 100, ledger.Ungraceful, "k2"),
		testutil.OpenRecord(3, 2200, 500, "k3"),
	}

	s := Compute(records)

	assert.Equal(t, "k1", s.LongestUptime.Kernel)
	assert.Equal(t, "k1", s.ShortestUptime.Kernel)
	assert.Equal(t, "k1", s.LongestDowntime.Kernel)
	assert.Equal(t, "k1", s.ShortestDowntime.Kernel)
}

func TestCompute_ClockAnomalyDoesNotCrash(t *testing.T) {
	// Boot epoch regressed: lifetime comes out negative. Ratios degrade to
	// zero instead of dividing by a bad denominator.
	records := []ledger.Record{
		testutil.ClosedRecord(1, 5000, 100, 5100, 50, ledger.Ungraceful, "k1"),
		testutil.OpenRecord(2, 1000, 10, "k1"),
	}

	s := Compute(records)

	assert.Equal(t, 0.0, s.UptimeRatio)
	assert.Equal(t, 0.0, s.DowntimeRatio)
	assert.Equal(t, 2, s.SessionCount)
}

func TestCompute_ZeroLifetime(t *testing.T) {
	s := Compute([]ledger.Record{testutil.OpenRecord(1, 1000, 0, "k1")})

	assert.Equal(t, 0.0, s.UptimeRatio, "zero lifetime must not divide")
	assert.Equal(t, 0.0, s.DowntimeRatio)
}

func TestCompute_RoundsToTwoDecimals(t *testing.T) {
	records := []ledger.Record{
		testutil.ClosedRecord(1, 1000, 100.0/3.0, 1033, 67, ledger.Ungraceful, "k1"),
		testutil.OpenRecord(2, 1100, 100.0/7.0, "k1"),
	}

	s := Compute(records)

	assert.Equal(t, 47.62, s.TotalUptime, "33.33... + 14.28... rounded")
	assert.Equal(t, 23.81, s.AverageUptime)
}
