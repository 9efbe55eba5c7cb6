// Package main provides tests for the synthgen CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/synthgen/internal/cli"
	"github.com/leapstack-labs/synthgen/internal/cli/config"
)

// run executes synthgen with args in a fresh working directory and returns
// stdout and stderr.
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

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	config.ResetConfig()
	return dir
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
}

func TestVersionCommand(t *testing.T) {
	inTempDir(t)
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "synthgen v"+cli.Version)
}

func TestHelpCommand(t *testing.T) {
	out, _, err := run(t, "--help")
	require.NoError(t, err)
	for _, expected := range []string{"crm", "toxicity", "init", "version", "completion"} {
		assert.Contains(t, out, expected)
	}
}

func TestCRMCommand_Defaults(t *testing.T) {
	dir := inTempDir(t)

	out, _, err := run(t, "crm")
	require.NoError(t, err)

	path := filepath.Join(dir, config.DefaultCRMOut)
	abs, err := filepath.Abs(config.DefaultCRMOut)
	require.NoError(t, err)
	assert.Equal(t, "Wrote 60 rows to "+abs+"\n", out)

	lines := readLines(t, path)
	require.Len(t, lines, 61)
	assert.Equal(t,
		"Client_ID,Country,Service_Line,Engagement_Rate,Response_Time_Hours,Leads_Converted,Satisfaction_Score,Revenue_Last_Year_EUR,Churn_Risk",
		lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "C0001,"))
	assert.True(t, strings.HasPrefix(lines[60], "C0060,"))
}

func TestCRMCommand_Deterministic(t *testing.T) {
	inTempDir(t)

	_, _, err := run(t, "crm", "--n", "25", "--seed", "7", "--out", "a.csv")
	require.NoError(t, err)
	_, _, err = run(t, "crm", "--n", "25", "--seed", "7", "--out", "b.csv")
	require.NoError(t, err)
	_, _, err = run(t, "crm", "--n", "25", "--seed", "8", "--out", "c.csv")
	require.NoError(t, err)

	a, err := os.ReadFile("a.csv")
	require.NoError(t, err)
	b, err := os.ReadFile("b.csv")
	require.NoError(t, err)
	c, err := os.ReadFile("c.csv")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCRMCommand_ThousandsSeparator(t *testing.T) {
	inTempDir(t)

	out, _, err := run(t, "crm", "--n", "1200", "--out", "big.csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Wrote 1,200 rows to "), out)
	assert.Len(t, readLines(t, "big.csv"), 1201)
}

func TestCRMCommand_Delimiter(t *testing.T) {
	inTempDir(t)

	_, _, err := run(t, "--delimiter", ";", "crm", "--n", "3", "--out", "semi.csv")
	require.NoError(t, err)
	lines := readLines(t, "semi.csv")
	assert.True(t, strings.HasPrefix(lines[0], "Client_ID;Country;"))
}

func TestCRMCommand_ConfigFileAndEnv(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultConfigFile),
		[]byte("crm:\n  rows: 5\n  out: from-file.csv\n"), 0600))
	t.Setenv("SYNTHGEN_CRM__ROWS", "8")

	_, _, err := run(t, "crm")
	require.NoError(t, err)
	assert.Len(t, readLines(t, "from-file.csv"), 9, "env overrides file rows")

	_, _, err = run(t, "crm", "--n", "2")
	require.NoError(t, err)
	assert.Len(t, readLines(t, "from-file.csv"), 3, "flag overrides env")
}

func TestToxicityCommand(t *testing.T) {
	dir := inTempDir(t)

	out, _, err := run(t, "toxicity", "-n", "120", "--out", "data/kpis.csv", "--charts-dir", "charts")
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Equal(t, "Wrote 120 rows to data/kpis.csv", lines[0])
	assert.Empty(t, lines[1])
	assert.Equal(t, "Correlation matrix (Pearson):", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "|"), "piped output is markdown")
	for _, col := range []string{"supervisor_toxicity", "absenteeism_days", "performance_score", "motivation"} {
		assert.Contains(t, out, col)
	}
	assert.Contains(t, out, "1.00")

	rows := readLines(t, filepath.Join(dir, "data", "kpis.csv"))
	assert.Len(t, rows, 121)

	for _, name := range []string{"toxicity_distribution.png", "toxicity_vs_absenteeism.png", "absenteeism_by_team.png"} {
		info, err := os.Stat(filepath.Join(dir, "charts", name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size())
	}
}

func TestToxicityCommand_TextOutputAndLegacyFlag(t *testing.T) {
	inTempDir(t)

	out, _, err := run(t, "-o", "text", "toxicity", "--n_rows", "30")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Wrote 30 rows to "+config.DefaultToxicityOut))
	assert.Contains(t, out, "┌")
	assert.Len(t, readLines(t, config.DefaultToxicityOut), 31)
}

func TestGeneratorCommands_InvalidRows(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "crm zero", args: []string{"crm", "--n", "0"}},
		{name: "crm negative", args: []string{"crm", "--n", "-3"}},
		{name: "toxicity zero", args: []string{"toxicity", "-n", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inTempDir(t)
			out, _, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "row count must be positive")
			assert.Empty(t, out)
		})
	}
}

func TestInvalidGlobalFlags(t *testing.T) {
	inTempDir(t)

	_, _, err := run(t, "--output", "html", "crm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output mode")

	_, _, err = run(t, "--delimiter", "::", "crm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single character")
}

func TestVerboseJSONLogging(t *testing.T) {
	inTempDir(t)

	_, errOut, err := run(t, "-v", "--log-format", "json", "crm", "--n", "4", "--out", "x.csv")
	require.NoError(t, err)
	assert.Contains(t, errOut, `"run_id"`)
	assert.Contains(t, errOut, `"msg":"generated crm table"`)
}

func TestDuckDBSink(t *testing.T) {
	dir := inTempDir(t)
	db := filepath.Join(dir, "warehouse.duckdb")

	_, _, err := run(t, "--duckdb", db, "crm", "--n", "10", "--out", "crm.csv")
	require.NoError(t, err)
	_, _, err = run(t, "--duckdb", db, "toxicity", "-n", "10", "--out", "tox.csv")
	require.NoError(t, err)

	_, err = os.Stat(db)
	assert.NoError(t, err)
}

func TestInitCommand(t *testing.T) {
	dir := inTempDir(t)

	out, _, err := run(t, "init", "project")
	require.NoError(t, err)
	path := filepath.Join("project", config.DefaultConfigFile)
	assert.Contains(t, out, path)

	raw, err := os.ReadFile(filepath.Join(dir, path))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "rows: 500")
	assert.Contains(t, string(raw), "charts_dir: reports")

	_, _, err = run(t, "init", "project")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = run(t, "init", "project", "--force")
	require.NoError(t, err)

	// The written file round-trips through the loader.
	config.ResetConfig()
	cfg, err := config.LoadConfig(filepath.Join(dir, path), nil, "")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "synthgen")

	_, _, err = run(t, "completion", "tcsh")
	assert.Error(t, err)
}
