// Package probe supplies the observation source: one consistent snapshot
// of the host's boot epoch, uptime, and kernel label per invocation.
package probe

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/uptally/uptally/internal/ledger"
)

// Source produces observations of the running host.
type Source interface {
	Observe(ctx context.Context) (ledger.Observation, error)
}

// SystemSource reads the live host via gopsutil. Boot time and uptime come
// from one host.Info call so the pair is a single consistent snapshot; the
// fractional uptime is refined from /proc/uptime where available.
type SystemSource struct{}

// Observe returns the current boot epoch, uptime, and kernel label.
func (SystemSource) Observe(ctx context.Context) (ledger.Observation, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return ledger.Observation{}, fmt.Errorf("probe host: %w", err)
	}

	uptime := float64(info.Uptime)
	// host.Info truncates uptime to whole seconds; /proc/uptime keeps the
	// fraction. Fall back silently off Linux.
	if frac, err := procUptime(); err == nil {
		uptime = frac
	}

	return ledger.Observation{
		BootEpoch: int64(info.BootTime),
		Uptime:    uptime,
		Kernel:    kernelLabel(info),
	}, nil
}

// kernelLabel builds the opaque per-session kernel identifier, e.g.
// "linux-6.1.0-13-amd64-x86_64".
func kernelLabel(info *host.InfoStat) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{info.OS, info.KernelVersion, info.KernelArch} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "-")
}

// procUptime reads seconds since boot, with fraction, from /proc/uptime.
func procUptime() (float64, error) {
	data, err := os.ReadFile("/proc/uptime")
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(data))
	if len(fields) < 1 {
		return 0, fmt.Errorf("malformed /proc/uptime: %q", string(data))
	}
	return strconv.ParseFloat(fields[0], 64)
}
