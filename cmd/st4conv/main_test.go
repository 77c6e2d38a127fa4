// Package main provides tests for the st4conv CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/st4conv/internal/cli"
	"github.com/leapstack-labs/st4conv/internal/cli/testutil"
)

// run executes the root command and returns stdout and stderr separately.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "st4conv v")
}

func TestHelpCommand(t *testing.T) {
	out, _, err := run(t, "--help")
	require.NoError(t, err)
	for _, expected := range []string{"convert", "inspect", "batch", "watch", "serve", "history", "completion"} {
		assert.Contains(t, out, expected)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "st4conv")
}

func TestConvertToStdout(t *testing.T) {
	input := testutil.WriteFile(t, t.TempDir(), "tower.st4", testutil.SampleST4)

	out, errOut, err := run(t, "convert", input)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.Equal(t, "Tower A", got["projectTitle"])
	assert.Equal(t, "tower.st4", got["fileName"])
	assert.Len(t, got["floors"], 1)
	// malformed beam line is logged, not printed with the model
	assert.Contains(t, errOut, "skipped malformed line")
	assert.Contains(t, errOut, "2 diagnostics")
}

func TestConvertYAMLToFile(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "tower.st4", testutil.SampleST4)
	target := filepath.Join(dir, "out", "tower.yaml")

	out, _, err := run(t, "convert", input, target, "--format", "yaml", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+target)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "projectTitle: Tower A")
}

func TestConvertOutputDir(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "tower.st4", testutil.SampleST4)
	outDir := filepath.Join(dir, "models")

	_, _, err := run(t, "convert", input, "--output-dir", outDir, "-f", "xlsx")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "tower.xlsx"))
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "tower.st4", testutil.SampleST4)
	empty := testutil.WriteFile(t, dir, "empty.st4", testutil.EmptyST4)

	tests := []struct {
		name      string
		args      []string
		errSubstr string
	}{
		{"xlsx on stdout", []string{"convert", input, "--format", "xlsx"}, "needs an output file"},
		{"unknown format", []string{"convert", input, "--format", "pdf"}, "unknown format"},
		{"unknown encoding", []string{"convert", input, "--encoding", "klingon"}, "unknown encoding"},
		{"missing input", []string{"convert", filepath.Join(dir, "nope.st4")}, "failed to open input"},
		{"empty model", []string{"convert", empty}, "--allow-empty"},
		{"no args", []string{"convert"}, "accepts between 1 and 2 arg(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestConvertAllowEmpty(t *testing.T) {
	empty := testutil.WriteFile(t, t.TempDir(), "empty.st4", testutil.EmptyST4)

	out, _, err := run(t, "convert", empty, "--allow-empty")
	require.NoError(t, err)
	assert.Contains(t, out, `"projectTitle": "Empty"`)
}

func TestInspectJSON(t *testing.T) {
	input := testutil.WriteFile(t, t.TempDir(), "tower.st4", testutil.SampleST4)

	out, _, err := run(t, "inspect", input, "--output", "json")
	require.NoError(t, err)

	var got struct {
		Lines int `json:"lines"`
		Stats struct {
			Floors  int `json:"floors"`
			Axes    int `json:"axes"`
			Columns int `json:"columns"`
			Slabs   int `json:"slabs"`
		} `json:"stats"`
		Diagnostics []struct {
			Kind string `json:"kind"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	assert.Equal(t, 21, got.Lines)
	assert.Equal(t, 1, got.Stats.Floors)
	assert.Equal(t, 4, got.Stats.Axes)
	assert.Equal(t, 1, got.Stats.Columns)
	assert.Equal(t, 1, got.Stats.Slabs)
	require.Len(t, got.Diagnostics, 2)
}

func TestInspectMarkdown(t *testing.T) {
	input := testutil.WriteFile(t, t.TempDir(), "tower.st4", testutil.SampleST4)

	out, _, err := run(t, "inspect", input)
	require.NoError(t, err)
	testutil.AssertNoANSI(t, out)
	assert.Contains(t, out, "# Tower A")
	assert.Contains(t, out, "| Ground |")
	assert.Contains(t, out, "Malformed")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	inputs := filepath.Join(dir, "exports")
	testutil.WriteFile(t, inputs, "a.st4", testutil.SampleST4)
	testutil.WriteFile(t, inputs, "b.st4", testutil.SampleST4)
	outDir := filepath.Join(dir, "models")

	out, _, err := run(t, "batch", inputs, "--output-dir", outDir, "--formats", "json,yaml", "--workers", "2", "-o", "json")
	require.NoError(t, err)

	var got []struct {
		Input   string   `json:"input"`
		Outputs []string `json:"outputs"`
		Floors  int      `json:"floors"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got), out)
	require.Len(t, got, 2)
	for _, e := range got {
		assert.Equal(t, 1, e.Floors)
		assert.Len(t, e.Outputs, 2)
	}
	for _, name := range []string{"a.json", "a.yaml", "b.json", "b.yaml"} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
}

func TestBatchStopsOnEmptyModel(t *testing.T) {
	dir := t.TempDir()
	good := testutil.WriteFile(t, dir, "good.st4", testutil.SampleST4)
	empty := testutil.WriteFile(t, dir, "empty.st4", testutil.EmptyST4)

	_, _, err := run(t, "batch", good, empty, "--workers", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty.st4")
}

func TestStoreAndHistory(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "tower.st4", testutil.SampleST4)
	storePath := filepath.Join(dir, "store", "models.db")

	_, errOut, err := run(t, "convert", input, filepath.Join(dir, "tower.json"), "--store", "--store-path", storePath)
	require.NoError(t, err)
	assert.Contains(t, errOut, "Saved conversion ")

	out, _, err := run(t, "history", "--store-path", storePath, "-o", "json")
	require.NoError(t, err)
	var convs []struct {
		ID       string `json:"id"`
		FileName string `json:"fileName"`
		Stats    struct {
			Columns int `json:"columns"`
		} `json:"stats"`
		Diagnostics int `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &convs), out)
	require.Len(t, convs, 1)
	assert.Equal(t, "tower.st4", convs[0].FileName)
	assert.Equal(t, 1, convs[0].Stats.Columns)
	assert.Equal(t, 2, convs[0].Diagnostics)

	out, _, err = run(t, "history", "show", convs[0].ID, "--store-path", storePath)
	require.NoError(t, err)
	assert.Contains(t, out, `"projectTitle": "Tower A"`)

	_, _, err = run(t, "history", "show", "missing", "--store-path", storePath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no conversion with id missing")
}

func TestHistoryEmpty(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "models.db")

	out, _, err := run(t, "history", "--store-path", storePath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "No conversions saved"), out)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	input := testutil.WriteFile(t, dir, "tower.st4", testutil.SampleST4)
	cfgPath := testutil.WriteFile(t, dir, "st4conv.yaml", "format: yaml\nindent: 4\nlog_level: error\n")

	out, errOut, err := run(t, "convert", input, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "projectTitle: Tower A")
	assert.NotContains(t, errOut, "skipped malformed line")
}
