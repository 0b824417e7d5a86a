package cli

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/uptally/uptally/internal/ledger"
	"github.com/uptally/uptally/internal/stats"
	"github.com/uptally/uptally/internal/testutil"
)

// goldenSnapshot is a fixed two-session ledger; dates render in UTC so the
// golden files are stable anywhere.
//
// To regenerate golden files, run:
//
//	go test ./internal/cli -update
func goldenSnapshot() ledger.Snapshot {
	return ledger.Snapshot{
		LedgerID: "00000000-0000-0000-0000-000000000001",
		Records: []ledger.Record{
			testutil.ClosedRecord(1, 1000000000, 500000, 1000500000, 100000, ledger.Graceful, "linux-5.10.0-x86_64"),
			testutil.OpenRecord(2, 1000600000, 200000, "linux-5.15.0-x86_64"),
		},
	}
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRenderSummary_Golden(t *testing.T) {
	snap := goldenSnapshot()
	sum := stats.Compute(snap.Records)

	var buf bytes.Buffer
	renderSummary(&buf, snap, sum, utcFormatter(false))

	newGoldie(t).Assert(t, "summary", buf.Bytes())
}

func TestRenderSummaryCSV_Golden(t *testing.T) {
	snap := goldenSnapshot()
	sum := stats.Compute(snap.Records)

	var buf bytes.Buffer
	require.NoError(t, renderSummaryCSV(&buf, snap, sum))

	newGoldie(t).Assert(t, "summary_csv", buf.Bytes())
}

func TestRenderListCSV_Golden(t *testing.T) {
	snap := goldenSnapshot()

	var buf bytes.Buffer
	require.NoError(t, renderListCSV(&buf, snap.Records))

	newGoldie(t).Assert(t, "list_csv", buf.Bytes())
}
