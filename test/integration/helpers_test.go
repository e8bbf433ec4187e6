//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir string // HOME: the default configuration lives under HomeDir/.teambrain
	HQDir   string // HomeDir/.teambrain, the root of every default path
}

// setupTestEnv points HOME at a temp directory and clears the BRAINCONF_*
// variables so store and config resolution are sandboxed. The env vars are
// restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{HomeDir: t.TempDir()}
	env.HQDir = filepath.Join(env.HomeDir, ".teambrain")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("BRAINCONF_CONFIG", "")
	t.Setenv("BRAINCONF_LOG_LEVEL", "")

	return env
}

// materializeDefaultPaths creates every directory and database file named by
// the default paths section so validation finds them.
func materializeDefaultPaths(t *testing.T, hq string) {
	t.Helper()
	for _, dir := range []string{
		"MEMORY_CORE_V2/03_INTER_AI_COMMS/THE_SYNAPSE/active",
		"MEMORY_CORE_V2/00_SHARED_MEMORY",
		"TASK_QUEUE",
	} {
		require.NoError(t, os.MkdirAll(filepath.Join(hq, dir), 0755))
	}
	writeFile(t, filepath.Join(hq, "MEMORY_CORE_V2/00_SHARED_MEMORY/memory_bridge.db"), "")
	writeFile(t, filepath.Join(hq, "TASK_QUEUE/taskqueue.db"), "")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
