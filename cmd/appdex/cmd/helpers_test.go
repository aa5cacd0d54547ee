package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// setupEnv points the CLI at a temp search directory, cache, and config
// home so tests never touch the real user environment.
func setupEnv(t *testing.T, bundles ...string) (searchDir, cachePath string) {
	t.Helper()

	searchDir = t.TempDir()
	for _, name := range bundles {
		require.NoError(t, os.Mkdir(filepath.Join(searchDir, name), 0o755))
	}

	cachePath = filepath.Join(t.TempDir(), "apps.json")
	t.Setenv("APPDEX_SEARCH_DIRS", searchDir)
	t.Setenv("APPDEX_CACHE_PATH", cachePath)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return searchDir, cachePath
}

// execute runs the root command with args and captures its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	root := NewRootCmd()
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}
