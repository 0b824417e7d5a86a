package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uptally/uptally/internal/ledger"
	"github.com/uptally/uptally/internal/query"
)

func TestParseOrder(t *testing.T) {
	fields, err := parseOrder("u,k")
	require.NoError(t, err)
	assert.Equal(t, []query.Field{query.Uptime, query.Kernel}, fields)

	fields, err = parseOrder("")
	require.NoError(t, err)
	assert.Nil(t, fields)

	_, err = parseOrder("u,x")
	assert.Error(t, err)
}

func TestRunList_Table(t *testing.T) {
	opts := &ListOptions{RootOptions: testOptions(t,
		ledger.Observation{BootEpoch: 1000000000, Uptime: 500, Kernel: "k1"},
		ledger.Observation{BootEpoch: 1000600000, Uptime: 10, Kernel: "k2"},
	)}
	ctx := context.Background()

	// Two invocations: boot, then a detected restart.
	require.NoError(t, runList(ctx, opts, &bytes.Buffer{}))
	var buf bytes.Buffer
	require.NoError(t, runList(ctx, opts, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3, "header plus one row per session")
	assert.Contains(t, lines[0], "STARTUP")
	assert.Contains(t, lines[1], "ungraceful") // closed row carries its kind
	assert.Contains(t, lines[2], "running")  // open tail
	assert.Contains(t, lines[2], "k2")
}

func TestRunList_ReverseShowsTailFirst(t *testing.T) {
	opts := &ListOptions{
		RootOptions: testOptions(t,
			ledger.Observation{BootEpoch: 1000000000, Uptime: 500, Kernel: "k1"},
			ledger.Observation{BootEpoch: 1000600000, Uptime: 10, Kernel: "k2"},
		),
		Reverse: true,
	}
	ctx := context.Background()

	require.NoError(t, runList(ctx, opts, &bytes.Buffer{}))
	var buf bytes.Buffer
	require.NoError(t, runList(ctx, opts, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "running", "reverse lists the open tail first")
}

func TestRunList_InvalidOrder(t *testing.T) {
	opts := &ListOptions{
		RootOptions: testOptions(t, ledger.Observation{BootEpoch: 1000000000, Uptime: 500, Kernel: "k1"}),
		Order:       "z",
	}

	err := runList(context.Background(), opts, &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunList_Quiet(t *testing.T) {
	opts := &ListOptions{RootOptions: testOptions(t, ledger.Observation{BootEpoch: 1000000000, Uptime: 500, Kernel: "k1"})}
	opts.Quiet = true

	var buf bytes.Buffer
	require.NoError(t, runList(context.Background(), opts, &buf))

	assert.Empty(t, buf.String())
}
