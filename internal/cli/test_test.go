package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestCommand_MissingArgs(t *testing.T) {
	_, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommand_NonExistentDir(t *testing.T) {
	_, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommand_Empty(t *testing.T) {
	out, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommand_AllPass(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "compacting.yaml", compactingScenario)

	out, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ compacting")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
}

func TestTestCommand_Failures(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "compacting.yaml", compactingScenario)
	writeScenario(t, dir, "failing.yaml", failingScenario)
	writeScenario(t, dir, "nested/invalid.yaml", invalidScenario)

	out, _, err := execute(NewTestCommand(&RootOptions{Format: "json"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeAssertion, resp.Error.Code)
	assert.Equal(t, 3, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Passed)
	assert.Equal(t, 2, resp.Data.Failed)

	byName := map[string]ScenarioResult{}
	for _, sr := range resp.Data.Scenarios {
		byName[sr.Name] = sr
	}
	assert.True(t, byName["compacting"].Pass)
	assert.False(t, byName["failing"].Pass)
	require.False(t, byName["invalid"].Pass)
	assert.Contains(t, byName["invalid"].Errors[0], "failed to load scenario")
}

func TestTestCommand_Filter(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "compacting.yaml", compactingScenario)
	writeScenario(t, dir, "failing.yaml", failingScenario)

	out, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), dir, "--filter", "comp*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 total")
	assert.NotContains(t, out, "failing")

	_, _, err = execute(NewTestCommand(&RootOptions{Format: "text"}), dir, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_Golden(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "compacting.yaml", compactingScenario)
	goldenPath := filepath.Join(dir, "golden", "compacting.golden")

	_, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), dir, "--update")
	require.NoError(t, err)
	golden, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Contains(t, string(golden), `"summary":"QEL-CC"`)

	out, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ compacting")

	require.NoError(t, os.WriteFile(goldenPath, []byte(`{}`), 0644))
	out, _, err = execute(NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Contains(t, out, "does not match golden file")
}

func TestTestCommand_JobsKeepFileOrder(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a_compacting.yaml", compactingScenario)
	writeScenario(t, dir, "b_failing.yaml", failingScenario)
	writeScenario(t, dir, "c_invalid.yaml", invalidScenario)

	serial, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), dir, "--jobs", "1")
	require.Error(t, err)
	parallel, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), dir, "-j", "8")
	require.Error(t, err)

	assert.Equal(t, serial, parallel)
	assert.Less(t, strings.Index(serial, "compacting"), strings.Index(serial, "failing"))
}

func TestTestCommand_GoldenKeyedByRelativePath(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "qel/event.yaml", compactingScenario)
	writeScenario(t, dir, "decay/event.yaml", strings.Replace(compactingScenario, `"QEL-CC"`, `"DIS-CC"`, 1))

	_, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), dir, "--update", "-j", "4")
	require.NoError(t, err)

	qel, err := os.ReadFile(filepath.Join(dir, "golden", "qel", "event.golden"))
	require.NoError(t, err)
	assert.Contains(t, string(qel), `"summary":"QEL-CC"`)

	decay, err := os.ReadFile(filepath.Join(dir, "golden", "decay", "event.golden"))
	require.NoError(t, err)
	assert.Contains(t, string(decay), `"summary":"DIS-CC"`)

	out, _, err := execute(NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 passed, 0 failed, 2 total")
}

func TestGoldenFilePath(t *testing.T) {
	dir := "scenarios"
	assert.Equal(t, filepath.Join(dir, "golden", "qel.golden"), goldenFilePath(dir, filepath.Join(dir, "qel.yaml")))
	assert.Equal(t, filepath.Join(dir, "golden", "nested", "qel.golden"), goldenFilePath(dir, filepath.Join(dir, "nested", "qel.cue")))
}
