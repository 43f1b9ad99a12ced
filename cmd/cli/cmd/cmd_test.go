package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"payoff/core/form"
	"payoff/core/types"
	"payoff/internal/errors"
)

// run executes the root command with args and returns stdout and stderr
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	calcRaw = form.RawInput{
		PeriodUnit:    string(form.DefaultPeriodUnit),
		FrequencyUnit: string(form.DefaultFrequencyUnit),
		Users:         form.DefaultUsers,
		HoursPerUse:   form.DefaultHoursPerUse,
	}
	calcOutput = outputFlags{}
	batchOutput = outputFlags{}
	batchVars = nil
	batchPolicy = policyFlags{severity: "block"}
	resetChanged(rootCmd)
	calcInteractive, calcExplain, calcFinite = false, false, false
	cfgFile, verbose, noColor, configForce = "", false, true, false

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append(args, "--no-color"))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetChanged(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	for _, sub := range c.Commands() {
		resetChanged(sub)
	}
}

func TestCalcJSON(t *testing.T) {
	out, _, err := run(t, "calc",
		"--price", "100000", "--period", "1", "--period-unit", "months",
		"--frequency", "1", "--frequency-unit", "week",
		"--mode", "per-hour", "--banding", "absolute", "--locale", "en", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Results []struct {
			UnitCost *float64       `json:"unit_cost"`
			Category types.Category `json:"category"`
			Verdict  types.Verdict  `json:"verdict"`
			Message  string         `json:"message"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Results, 1)
	require.NotNil(t, doc.Results[0].UnitCost)
	assert.InDelta(t, 23333.33, *doc.Results[0].UnitCost, 0.01)
	assert.Equal(t, types.CategoryShocked, doc.Results[0].Category)
	assert.Equal(t, types.VerdictWasteful, doc.Results[0].Verdict)
}

func TestCalcCard(t *testing.T) {
	out, _, err := run(t, "calc", "--price", "1000", "--period", "1", "--period-unit", "years",
		"--frequency", "1", "--frequency-unit", "day", "--banding", "absolute")
	require.NoError(t, err)
	assert.Contains(t, out, "ええ感じや！元取れてるで！")
	assert.Contains(t, out, "🤩")
}

func TestCalcValidation(t *testing.T) {
	_, stderr, err := run(t, "calc", "--period", "1", "--frequency", "abc")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
	assert.Contains(t, stderr, "価格を入力してください")
	assert.Contains(t, stderr, "頻度は数値である必要があります")
}

func TestCalcRejectsUnknownMode(t *testing.T) {
	_, _, err := run(t, "calc", "--price", "1", "--period", "1", "--frequency", "1", "--mode", "per-minute")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotSupported))
}

const batchYAML = `
items:
  - name: camera
    price: 100000
    period_value: 1
    frequency_value: 1
  - name: kettle
    price: 3000
    period_value: 2
    period_unit: years
    frequency_value: 2
    frequency_unit: day
`

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestBatchMarkdown(t *testing.T) {
	path := writeScenario(t, "gear.yaml", batchYAML)
	out, _, err := run(t, "batch", path, "--format", "markdown", "--locale", "en")
	require.NoError(t, err)
	assert.Contains(t, out, "camera")
	assert.Contains(t, out, "kettle")
}

func TestBatchCLIShowsThinker(t *testing.T) {
	path := writeScenario(t, "gear.yaml", batchYAML)
	out, stderr, err := run(t, "batch", path)
	require.NoError(t, err)
	assert.Contains(t, out, "kettle")
	assert.Contains(t, stderr, "🤔")
	assert.Contains(t, stderr, "gear.yaml")
}

func TestBatchHCLVars(t *testing.T) {
	path := writeScenario(t, "gear.hcl", `
item "camera" {
  price     = var.price
  period    = 1
  frequency = 1
}
`)
	out, _, err := run(t, "batch", path, "--var", "price=100000", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "camera"`)

	_, _, err = run(t, "batch", path, "--format", "json")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestBatchXLSX(t *testing.T) {
	path := writeScenario(t, "gear.yaml", batchYAML)
	dest := filepath.Join(t.TempDir(), "gear.xlsx")

	out, _, err := run(t, "batch", path, "--out", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+dest)

	f, err := excelize.OpenFile(dest)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("payoff")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestXLSXNeedsOut(t *testing.T) {
	path := writeScenario(t, "gear.yaml", batchYAML)
	_, _, err := run(t, "batch", path, "--format", "xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--out")
}

func TestConfigInit(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "payoff.yaml")
	out, _, err := run(t, "config", "init", dest)
	require.NoError(t, err)
	assert.Contains(t, out, dest)
	assert.FileExists(t, dest)

	_, _, err = run(t, "config", "init", dest)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))

	_, _, err = run(t, "config", "init", dest, "--force")
	require.NoError(t, err)
}

func TestConfigShow(t *testing.T) {
	out, _, err := run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "mode: per-user-hour")
	assert.Contains(t, out, "banding: ratio")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "payoff version")
}

func TestParseVars(t *testing.T) {
	vars, err := parseVars([]string{"a=1", " b =x=y"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "x=y"}, vars)

	_, err = parseVars([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseVars([]string{"=1"})
	assert.Error(t, err)
}

func TestBatchPolicy(t *testing.T) {
	path := writeScenario(t, "gear.yaml", batchYAML)

	_, stderr, err := run(t, "batch", path, "--format", "json", "--banding", "absolute", "--max-wasteful", "0")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
	assert.Contains(t, err.Error(), "max-wasteful")
	assert.Contains(t, stderr, "camera")

	_, _, err = run(t, "batch", path, "--format", "json", "--banding", "absolute", "--max-wasteful", "0", "--policy-severity", "warning")
	assert.NoError(t, err)

	_, _, err = run(t, "batch", path, "--format", "json", "--max-category", "shocked", "--require-finite")
	assert.NoError(t, err)

	_, _, err = run(t, "batch", path, "--format", "json", "--max-category", "furious")
	assert.True(t, errors.IsType(err, errors.TypeNotSupported))
}

func TestCalcExplain(t *testing.T) {
	out, stderr, err := run(t, "calc", "--price", "12000", "--period", "4", "--period-unit", "weeks",
		"--frequency", "3", "--users", "2", "--hours", "5", "--format", "json", "--explain")
	require.NoError(t, err)
	assert.NotContains(t, out, "period_in_days =")
	assert.Contains(t, stderr, "total_hours × 2 users")
	assert.Contains(t, stderr, "unit_cost")
}

func TestCalcRequireFinite(t *testing.T) {
	out, _, err := run(t, "calc", "--price", "1000", "--period", "1", "--frequency", "0",
		"--format", "json", "--require-finite")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeDegenerate))
	assert.Contains(t, out, `"finite": false`)

	_, _, err = run(t, "calc", "--price", "1000", "--period", "1", "--frequency", "1", "--require-finite")
	assert.NoError(t, err)
}

func TestBatchPolicyVerboseListsRules(t *testing.T) {
	path := writeScenario(t, "gear.yaml", batchYAML)

	_, stderr, err := run(t, "batch", path, "--format", "json", "--max-wasteful", "5", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "max-wasteful: at most 5 wasteful purchases")
}
