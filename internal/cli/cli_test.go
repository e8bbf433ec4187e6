package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teambrain/brainconf/internal/store"
)

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

// resetFlags restores every flag in the command tree to its default so runs
// within one test binary do not leak state into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// run executes the root command against the config file at path.
func run(t *testing.T, path, stdin string, args ...string) cmdResult {
	t.Helper()
	t.Setenv("BRAINCONF_CONFIG", "")
	t.Setenv("BRAINCONF_LOG_LEVEL", "")
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", path}, args...))

	err := rootCmd.Execute()
	return cmdResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func tempConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "team_brain_config.json")
}

func TestShow_CreatesDefaults(t *testing.T) {
	path := tempConfig(t)

	res := run(t, path, "", "show")
	require.NoError(t, res.err)
	assert.FileExists(t, path)
	assert.Contains(t, res.stdout, "Config file: "+path)
	assert.Contains(t, res.stdout, "Version:     1.0.0")
	for _, name := range []string{"ATLAS", "FORGE", "CLIO", "BOLT", "NEXUS", "synapse", "max_retries"} {
		assert.Contains(t, res.stdout, name)
	}
}

func TestShow_JSON(t *testing.T) {
	path := tempConfig(t)

	res := run(t, path, "", "show", "--json")
	require.NoError(t, res.err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
	assert.Contains(t, doc, "paths")
	assert.Contains(t, doc, "agents")
	assert.Contains(t, doc, "settings")
	assert.True(t, strings.HasPrefix(res.stdout, "{\n  \"version\": \"1.0.0\""))
}

func TestShow_YAML(t *testing.T) {
	res := run(t, tempConfig(t), "", "show", "--yaml")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "version: 1.0.0\n"))
	assert.Contains(t, res.stdout, "default_poll_interval: 1.0")
}

func TestShow_RejectsJSONAndYAML(t *testing.T) {
	res := run(t, tempConfig(t), "", "show", "--json", "--yaml")
	require.Error(t, res.err)
}

func TestGet(t *testing.T) {
	path := tempConfig(t)

	res := run(t, path, "", "get", "--key", "agents.ATLAS.model")
	require.NoError(t, res.err)
	assert.Equal(t, "\"sonnet-4.5\"\n", res.stdout)

	res = run(t, path, "", "get", "settings.max_retries")
	require.NoError(t, res.err)
	assert.Equal(t, "3\n", res.stdout)

	res = run(t, path, "", "get", "--key", "agents.BOLT.capabilities", "--yaml")
	require.NoError(t, res.err)
	assert.Equal(t, "- code_execution\n- testing\n- quick_tasks\n", res.stdout)
}

func TestGet_Errors(t *testing.T) {
	path := tempConfig(t)

	res := run(t, path, "", "get", "--key", "agents.GHOST.model")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, store.ErrKeyNotFound)

	res = run(t, path, "", "get")
	require.Error(t, res.err)

	res = run(t, path, "", "get", "--key", "a", "b")
	require.Error(t, res.err)
}

func TestSet_ParsesJSONAndSaves(t *testing.T) {
	path := tempConfig(t)

	res := run(t, path, "", "set", "--key", "settings.max_retries", "--value", "5")
	require.NoError(t, res.err)
	assert.Equal(t, "[OK] Set settings.max_retries = 5\n", res.stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"max_retries": 5,`)

	res = run(t, path, "", "get", "--key", "settings.max_retries")
	require.NoError(t, res.err)
	assert.Equal(t, "5\n", res.stdout)

	res = run(t, path, "", "set", "--key", "agents.ATLAS.capabilities", "--value", `["planning","review"]`)
	require.NoError(t, res.err)
	s, err := store.Open(store.WithPath(path))
	require.NoError(t, err)
	atlas, err := s.GetAgent("ATLAS")
	require.NoError(t, err)
	assert.Equal(t, []string{"planning", "review"}, atlas.Capabilities)
}

func TestSet_FallsBackToString(t *testing.T) {
	path := tempConfig(t)

	res := run(t, path, "", "set", "--key", "agents.ATLAS.model", "--value", "opus-4.5")
	require.NoError(t, res.err)

	res = run(t, path, "", "get", "--key", "agents.ATLAS.model")
	require.NoError(t, res.err)
	assert.Equal(t, "\"opus-4.5\"\n", res.stdout)
}

func TestSet_NewIntermediates(t *testing.T) {
	path := tempConfig(t)

	res := run(t, path, "", "set", "--key", "settings.retry.backoff", "--value", "2.5")
	require.NoError(t, res.err)

	res = run(t, path, "", "get", "--key", "settings.retry")
	require.NoError(t, res.err)
	assert.Equal(t, "{\n  \"backoff\": 2.5\n}\n", res.stdout)
}

func TestSet_ThroughScalarFails(t *testing.T) {
	path := tempConfig(t)
	require.NoError(t, run(t, path, "", "show").err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	res := run(t, path, "", "set", "--key", "settings.max_retries.inner", "--value", "1")
	require.Error(t, res.err)
	assert.ErrorIs(t, res.err, store.ErrNotTraversable)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestSet_RequiresFlags(t *testing.T) {
	res := run(t, tempConfig(t), "", "set", "--key", "settings.x")
	require.Error(t, res.err)
}

func TestList(t *testing.T) {
	path := tempConfig(t)

	res := run(t, path, "", "list", "--section", "agents")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "MODEL")
	assert.Contains(t, res.stdout, "orchestrator")
	assert.Less(t, strings.Index(res.stdout, "ATLAS"), strings.Index(res.stdout, "NEXUS"))

	res = run(t, path, "", "list", "--section", "paths")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "memory_bridge_db")

	res = run(t, path, "", "list", "--section", "settings", "--json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"default_poll_interval": 1.0`)
}

func TestList_UnknownSection(t *testing.T) {
	res := run(t, tempConfig(t), "", "list", "--section", "models")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "unknown section")
}

func TestValidate_Default(t *testing.T) {
	res := run(t, tempConfig(t), "", "validate")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "[FAIL]")
	assert.Contains(t, res.stdout, "[WARN] paths.synapse")
	assert.Contains(t, res.stdout, "[OK] Configuration is valid")
}

func TestValidate_Invalid(t *testing.T) {
	path := tempConfig(t)
	require.NoError(t, os.WriteFile(path, []byte(`{"paths": {}, "agents": {"X": {"role": "r"}}}`), 0o644))

	res := run(t, path, "", "validate")
	require.ErrorIs(t, res.err, errValidationFailed)
	assert.Contains(t, res.stdout, "[FAIL] agents.X")
	assert.Contains(t, res.stdout, "[FAIL] document")
	assert.Contains(t, res.stdout, "2 error(s), 0 warning(s)")
}

func TestReset_Declined(t *testing.T) {
	path := tempConfig(t)
	require.NoError(t, run(t, path, "", "set", "--key", "settings.max_retries", "--value", "9").err)

	res := run(t, path, "no\n", "reset")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "(yes/no): ")
	assert.Contains(t, res.stdout, "[CANCELLED]")

	res = run(t, path, "", "get", "--key", "settings.max_retries")
	require.NoError(t, res.err)
	assert.Equal(t, "9\n", res.stdout)
}

func TestReset_Confirmed(t *testing.T) {
	path := tempConfig(t)
	require.NoError(t, run(t, path, "", "set", "--key", "settings.max_retries", "--value", "9").err)

	res := run(t, path, "yes\n", "reset")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "[OK] Configuration reset to defaults")

	res = run(t, path, "", "get", "--key", "settings.max_retries")
	require.NoError(t, res.err)
	assert.Equal(t, "3\n", res.stdout)
}

func TestReset_YesFlagSkipsPrompt(t *testing.T) {
	path := tempConfig(t)
	require.NoError(t, run(t, path, "", "set", "--key", "agents.EXTRA.model", "--value", "grok").err)

	res := run(t, path, "", "reset", "--yes")
	require.NoError(t, res.err)
	assert.NotContains(t, res.stdout, "(yes/no)")

	res = run(t, path, "", "get", "--key", "agents.EXTRA")
	assert.ErrorIs(t, res.err, store.ErrKeyNotFound)
}

func TestReset_EOFIsNo(t *testing.T) {
	res := run(t, tempConfig(t), "", "reset")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "[CANCELLED]")
}

func TestLogLevelFlag(t *testing.T) {
	res := run(t, tempConfig(t), "", "--log-level", "debug", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "writing defaults")
	assert.Contains(t, res.stderr, "subsystem=store")

	res = run(t, tempConfig(t), "", "--log-level", "verbose", "show")
	require.Error(t, res.err)
}

func TestLogLevelFromDocument(t *testing.T) {
	path := tempConfig(t)
	require.NoError(t, run(t, path, "", "set", "--key", "settings.log_level", "--value", "DEBUG").err)

	res := run(t, path, "", "set", "--key", "settings.max_retries", "--value", "4")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "saved configuration")
}

func TestVersion(t *testing.T) {
	buildVersion, buildCommit, buildDate = "1.2.3", "abc123", "2026-01-01"

	res := run(t, tempConfig(t), "", "version", "--short")
	require.NoError(t, res.err)
	assert.Equal(t, "1.2.3\n", res.stdout)

	res = run(t, tempConfig(t), "", "version")
	require.NoError(t, res.err)
	assert.Equal(t, "brainconf version 1.2.3 (commit: abc123, built: 2026-01-01)\n", res.stdout)

	res = run(t, tempConfig(t), "", "version", "--json")
	require.NoError(t, res.err)
	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &info))
	assert.Equal(t, "abc123", info["commit"])
}

func TestHelpNamesEnvironmentVariables(t *testing.T) {
	res := run(t, tempConfig(t), "", "--help")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "$BRAINCONF_CONFIG")
	assert.Contains(t, res.stdout, "$BRAINCONF_LOG_LEVEL")
}

func TestParseCLIValue(t *testing.T) {
	assert.Equal(t, store.KindNumber, parseCLIValue("42").Kind())
	assert.Equal(t, store.KindBool, parseCLIValue("true").Kind())
	assert.Equal(t, store.KindNull, parseCLIValue("null").Kind())
	assert.Equal(t, store.KindSequence, parseCLIValue(`[1, 2]`).Kind())
	assert.Equal(t, store.KindMapping, parseCLIValue(`{"a": 1}`).Kind())

	v := parseCLIValue("hello world")
	s, ok := v.AsString()
	require.True(t, ok)
	assert.Equal(t, "hello world", s)

	v = parseCLIValue(`"quoted"`)
	s, _ = v.AsString()
	assert.Equal(t, "quoted", s)
}
