package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/appdex/internal/config"
	"github.com/Aman-CERP/appdex/internal/history"
)

func TestRecentCmd_EmptyHistory(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "recent")

	require.NoError(t, err)
	assert.Contains(t, out, "No launch history.")
}

func TestRecentCmd_ShowsLaunches(t *testing.T) {
	// Given: recorded launches in the default history store
	setupEnv(t)
	seedHistory(t, "/Applications/Safari.app", "Safari")

	// When: asking for recent launches
	out, err := execute(t, "recent")

	// Then: the launch shows up in the table
	require.NoError(t, err)
	assert.Contains(t, out, "Safari")
	assert.Contains(t, out, "NAME")
}

func TestRecentCmd_Forget(t *testing.T) {
	// Given: one recorded launch
	setupEnv(t)
	seedHistory(t, "/Applications/Safari.app", "Safari")

	// When: forgetting it
	_, err := execute(t, "recent", "--forget", "/Applications/Safari.app")
	require.NoError(t, err)

	// Then: the history is empty again
	out, err := execute(t, "recent")
	require.NoError(t, err)
	assert.Contains(t, out, "No launch history.")
}

// seedHistory records a launch in the store the CLI will read.
func seedHistory(t *testing.T, path, name string) {
	t.Helper()

	hist, err := history.Open(filepath.Join(config.DataDir(), "history.db"))
	require.NoError(t, err)
	require.NoError(t, hist.Record(path, name))
	require.NoError(t, hist.Close())
}
