package runner

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDryRunEchoesAndSkips(t *testing.T) {
	var out bytes.Buffer
	e := New(true, &out)
	e.geteuid = func() int { return 0 }

	err := e.Run([]string{"wipefs", "--all", "/dev/sdb"}, true)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "→ wipefs --all /dev/sdb")
	assert.Contains(t, out.String(), "[dry-run: skipped]")
}

func TestRunPrependsSudoWhenUnprivileged(t *testing.T) {
	var out bytes.Buffer
	e := New(true, &out)
	e.geteuid = func() int { return 1000 }

	require.NoError(t, e.Run([]string{"parted", "-s", "/dev/sdb", "print"}, true))
	assert.Contains(t, out.String(), "→ sudo parted -s /dev/sdb print")
}

func TestRunNoSudoWhenRoot(t *testing.T) {
	var out bytes.Buffer
	e := New(true, &out)
	e.geteuid = func() int { return 0 }

	require.NoError(t, e.Run([]string{"parted", "-s", "/dev/sdb", "print"}, true))
	assert.NotContains(t, out.String(), "sudo")
}

func TestRunNoSudoWhenNotElevated(t *testing.T) {
	var out bytes.Buffer
	e := New(true, &out)
	e.geteuid = func() int { return 1000 }

	require.NoError(t, e.Run([]string{"true"}, false))
	assert.NotContains(t, out.String(), "sudo")
}

func TestRunExecutesCommand(t *testing.T) {
	var out bytes.Buffer
	e := New(false, &out)
	e.geteuid = func() int { return 1000 }

	require.NoError(t, e.Run([]string{"true"}, false))
	assert.NotContains(t, out.String(), "[dry-run")
}

func TestRunReportsFailure(t *testing.T) {
	var out bytes.Buffer
	e := New(false, &out)
	e.geteuid = func() int { return 1000 }

	err := e.Run([]string{"false"}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "false")
}

func TestRunEmptyCommand(t *testing.T) {
	e := New(false, nil)
	assert.Error(t, e.Run(nil, false))
}

func TestOutputRunsEvenInDryRun(t *testing.T) {
	e := New(true, nil)
	got, err := e.Output([]string{"echo", "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", got)
}

func TestOutputFailure(t *testing.T) {
	e := New(false, nil)
	_, err := e.Output([]string{"false"})
	assert.Error(t, err)
}

func TestLookPath(t *testing.T) {
	e := New(false, nil)

	_, err := e.LookPath("sh")
	assert.NoError(t, err)

	_, err = e.LookPath("definitely-not-a-real-tool")
	assert.Error(t, err)
}
