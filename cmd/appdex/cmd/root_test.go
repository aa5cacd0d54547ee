package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Help(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "appdex")
	assert.Contains(t, out, "search")
	assert.Contains(t, out, "refresh")
	assert.Contains(t, out, "status")
}

func TestRootCmd_VersionFlag(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "--version")

	require.NoError(t, err)
	assert.Contains(t, out, "appdex version")
}

func TestRootCmd_NonTTYPrintsListing(t *testing.T) {
	// Given: bundles on disk and a non-terminal stdout
	setupEnv(t, "Safari.app", "Mail.app")

	// When: running with no arguments
	out, err := execute(t)

	// Then: the full listing is printed instead of the picker
	require.NoError(t, err)
	assert.Contains(t, out, "Safari")
	assert.Contains(t, out, "Mail")
}

func TestRootCmd_PlainFlag(t *testing.T) {
	setupEnv(t, "Safari.app")

	out, err := execute(t, "--plain")

	require.NoError(t, err)
	assert.Contains(t, out, "Safari")
}
