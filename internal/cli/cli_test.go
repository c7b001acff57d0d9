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

	"github.com/rcliao/nvr/internal/model"
)

// execute runs RootCmd with args and stdin against an isolated config.
// Flag values persist between runs, so every flag is reset first.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	stdout, _, err := executeStreams(t, stdin, args...)
	return stdout, err
}

func executeStreams(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("NVR_CONFIG", filepath.Join(t.TempDir(), "none.yaml"))
	for _, k := range []string{"NVR_HISTORY", "NVR_BACKEND", "NVR_HISTORY_LIMIT", "NVR_CURRENCY"} {
		t.Setenv(k, "")
	}
	resetFlags(RootCmd)

	var out, errOut bytes.Buffer
	RootCmd.SetArgs(args)
	RootCmd.SetIn(strings.NewReader(stdin))
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	err := RootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func answers(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// perfectBuy answers every question of an analysis so that need and value
// match fully on every dimension.
func perfectBuy(product string) []string {
	lines := []string{product, "1000"}
	for i := 0; i < 14; i++ {
		lines = append(lines, "10")
	}
	return append(lines, "2", "n", "n", "n", "n")
}

func loadRecords(t *testing.T, path string) []model.Record {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []model.Record
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func TestAnalyzeSavesRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	out, err := execute(t, answers(perfectBuy("Desk")...), "analyze", "--history", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Overall match = 100.0%")
	assert.Contains(t, out, "Decision saved to "+path)

	records := loadRecords(t, path)
	require.Len(t, records, 1)
	assert.Equal(t, "Desk", records[0].Product)
	assert.Equal(t, "buy", string(records[0].Decision))
	assert.Equal(t, "Stable", records[0].TimeType)
	assert.False(t, records[0].IsImpulse)
}

func TestAnalyzeEmptyProductAborts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	out, err := execute(t, answers(""), "analyze", "--history", path)
	require.NoError(t, err)
	assert.Contains(t, out, "❌")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestAnalyzeEndOfInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	out, err := execute(t, answers("Desk", "1000", "5"), "analyze", "--history", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Goodbye")
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestHistoryShowAndFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	for _, p := range []string{"Desk", "Chair"} {
		_, err := execute(t, answers(perfectBuy(p)...), "analyze", "--history", path)
		require.NoError(t, err)
	}

	out, err := execute(t, "", "history", "--history", path)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Chair"), strings.Index(out, "Desk"), "newest first")

	out, err = execute(t, "", "history", "--history", path, "--product", "des", "-f", "json")
	require.NoError(t, err)
	var results []struct {
		Index   int    `json:"index"`
		Product string `json:"product"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Desk", results[0].Product)
	assert.Equal(t, 2, results[0].Index)

	out, err = execute(t, "", "history", "--history", path, "--decision", "reject")
	require.NoError(t, err)
	assert.Contains(t, out, "No history yet")

	_, err = execute(t, "", "history", "--history", path, "--decision", "maybe")
	assert.Error(t, err)

	out, err = execute(t, "", "show", "1", "--history", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Chair")

	_, err = execute(t, "", "show", "3", "--history", path)
	assert.Error(t, err)
}

func TestStatsEmptyAndPopulated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	out, err := execute(t, "", "stats", "--history", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No data yet")

	_, err = execute(t, answers(perfectBuy("Desk")...), "analyze", "--history", path)
	require.NoError(t, err)

	out, err = execute(t, "", "stats", "--history", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Total decisions: 1")
}

func TestExportImportAcrossBackends(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "records.json")
	dbPath := filepath.Join(dir, "records.db")

	for _, p := range []string{"Desk", "Chair"} {
		_, err := execute(t, answers(perfectBuy(p)...), "analyze", "--history", jsonPath)
		require.NoError(t, err)
	}

	exported, err := execute(t, "", "export", "--history", jsonPath)
	require.NoError(t, err)

	out, err := execute(t, exported, "import", "--history", dbPath, "--backend", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, out, `"imported":2`)

	out, err = execute(t, "", "show", "2", "--history", dbPath, "--backend", "sqlite", "-f", "json")
	require.NoError(t, err)
	var r model.Record
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "Desk", r.Product)

	_, err = execute(t, "not json", "import", "--history", dbPath, "--backend", "sqlite")
	assert.Error(t, err)
}

func TestMenu(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	in := answers(perfectBuy("Desk")...) + answers("9", "2", "1", "", "3", "4")
	out, err := execute(t, in, "--history", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Decision saved")
	assert.Contains(t, out, "Invalid option")
	assert.Contains(t, out, "Decision history")
	assert.Contains(t, out, "Total decisions: 1")
	assert.Contains(t, out, "Goodbye")
	assert.Len(t, loadRecords(t, path), 1)
}

func TestMenuEndOfInput(t *testing.T) {
	out, err := execute(t, "", "--history", filepath.Join(t.TempDir(), "records.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "Goodbye")
}

func TestInvalidConfiguration(t *testing.T) {
	_, err := execute(t, "", "stats", "--backend", "postgres", "--history", filepath.Join(t.TempDir(), "h"))
	assert.Error(t, err)

	_, err = execute(t, "", "stats", "-f", "xml", "--history", filepath.Join(t.TempDir(), "h"))
	assert.Error(t, err)
}

func TestDims(t *testing.T) {
	out, err := execute(t, "", "dims", "--history", filepath.Join(t.TempDir(), "h"))
	require.NoError(t, err)
	assert.Contains(t, out, "Safety")
	assert.Contains(t, out, "Maximum match score: 890")
	assert.Contains(t, out, "Appreciating")
}

func TestDefaultHistoryPathPerBackend(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	_, err := execute(t, answers(perfectBuy("Desk")...), "analyze")
	require.NoError(t, err)

	out, err := execute(t, "", "stats", "--backend", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, out, "No data yet")

	_, err = execute(t, answers(perfectBuy("Chair")...), "analyze", "--backend", "sqlite")
	require.NoError(t, err)
	_, err = execute(t, answers(perfectBuy("Lamp")...), "analyze", "--backend", "sqlite")
	require.NoError(t, err)

	out, err = execute(t, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total decisions: 1")

	out, err = execute(t, "", "stats", "--backend", "sqlite")
	require.NoError(t, err)
	assert.Contains(t, out, "Total decisions: 2")

	assert.Len(t, loadRecords(t, filepath.Join(home, ".nvr", "nvr_records.json")), 1)
	_, statErr := os.Stat(filepath.Join(home, ".nvr", "nvr_records.db"))
	assert.NoError(t, statErr)
}

func TestAnalyzeJSONKeepsStdoutClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")

	stdout, stderr, err := executeStreams(t, answers("Desk", "1000"), "analyze", "--history", path, "-f", "json")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Goodbye")

	stdout, stderr, err = executeStreams(t, answers(""), "analyze", "--history", path, "-f", "json")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "❌")

	stdout, _, err = executeStreams(t, answers(perfectBuy("Desk")...), "analyze", "--history", path, "-f", "json")
	require.NoError(t, err)
	var res struct {
		Tier   string       `json:"tier"`
		Record model.Record `json:"record"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &res))
	assert.Equal(t, "buy", res.Tier)
	assert.Equal(t, "Desk", res.Record.Product)
}

func TestWriteJSONReportsEncodeError(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, writeJSON(&buf, make(chan int)))
	assert.Empty(t, buf.String())

	require.NoError(t, writeJSON(&buf, []int{1}))
	assert.JSONEq(t, "[1]", buf.String())
}
