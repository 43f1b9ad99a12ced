package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payoff/core/locale"
	"payoff/core/types"
	"payoff/internal/errors"
)

const hclScenario = `
mode    = "per-hour"
banding = "absolute"

item "camera" {
  price          = var.camera_price
  period         = 1
  period_unit    = "months"
  frequency      = 1
  frequency_unit = "week"
}

item "coffee machine" {
  price          = 30000
  period         = "2"
  period_unit    = "years"
  frequency      = 1
  frequency_unit = "day"
  users          = var.household
}
`

const yamlScenario = `
items:
  - name: camera
    price: 100000
    period_value: 1
    period_unit: months
    frequency_value: 1
    frequency_unit: week
  - name: bike
    price: "50000"
    period_value: 6
    frequency_value: 2
    hours_per_use: 2
`

func TestParseHCLWithVars(t *testing.T) {
	s, err := Parse([]byte(hclScenario), "gear.hcl", map[string]string{
		"camera_price": "100000",
		"household":    "3",
	})
	require.NoError(t, err)

	assert.Equal(t, "gear.hcl", s.Source)
	assert.Equal(t, "per-hour", s.Mode)
	require.Len(t, s.Entries, 2)
	assert.Equal(t, "camera", s.Entries[0].Name)
	assert.Equal(t, "100000", s.Entries[0].Raw.Price)
	assert.Equal(t, "3", s.Entries[1].Raw.Users)
	assert.Equal(t, "2", s.Entries[1].Raw.PeriodValue)
}

func TestParseHCLMissingVar(t *testing.T) {
	_, err := Parse([]byte(hclScenario), "gear.hcl", nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestParseHCLSyntaxError(t *testing.T) {
	_, err := Parse([]byte(`item "x" {`), "broken.hcl", nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestParseYAML(t *testing.T) {
	s, err := Parse([]byte(yamlScenario), "gear.yaml", nil)
	require.NoError(t, err)

	require.Len(t, s.Entries, 2)
	assert.Equal(t, "100000", s.Entries[0].Raw.Price)
	assert.Equal(t, "months", s.Entries[0].Raw.PeriodUnit)
	assert.Equal(t, "bike", s.Entries[1].Name)
	assert.Equal(t, "2", s.Entries[1].Raw.HoursPerUse)
	assert.Empty(t, s.Entries[1].Raw.FrequencyUnit)
}

func TestParseRejectsUnknownExtension(t *testing.T) {
	_, err := Parse([]byte(`{}`), "gear.json", nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotSupported))
}

func TestParseRejectsDuplicateAndEmpty(t *testing.T) {
	_, err := Parse([]byte("items: []\n"), "empty.yaml", nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))

	_, err = Parse([]byte(`
items:
  - {name: a, price: 1, period_value: 1, frequency_value: 1}
  - {name: a, price: 2, period_value: 1, frequency_value: 1}
`), "dup.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate item "a"`)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gear.yml")
	require.NoError(t, os.WriteFile(path, []byte(yamlScenario), 0644))

	s, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "gear.yml", s.Source)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"), nil)
	assert.True(t, errors.IsType(err, errors.TypeInput))
}

func TestEvaluateUsesScenarioOptions(t *testing.T) {
	s, err := Parse([]byte(hclScenario), "gear.hcl", map[string]string{
		"camera_price": "100000",
		"household":    "3",
	})
	require.NoError(t, err)

	report, err := s.Evaluate(types.DefaultOptions(), locale.English, types.CurrencyJPY)
	require.NoError(t, err)

	require.Len(t, report.Items, 2)
	camera := report.Items[0].Result
	assert.Equal(t, types.ModePerHour, camera.Mode)
	assert.Equal(t, types.BandingAbsolute, camera.Banding)
	assert.InDelta(t, 23333.33, camera.UnitCost, 0.01)
	assert.Equal(t, types.CategoryShocked, camera.Category)

	require.NotNil(t, report.Summary)
	assert.Equal(t, 2, report.Summary.Items)
	assert.Equal(t, "gear.hcl", report.Metadata.Source)
	assert.Len(t, report.Metadata.InputHash, 64)
	assert.Equal(t, locale.English, report.Locale)
}

func TestEvaluateFallsBackToDefaults(t *testing.T) {
	s, err := Parse([]byte(yamlScenario), "gear.yaml", nil)
	require.NoError(t, err)

	report, err := s.Evaluate(types.DefaultOptions(), locale.Japanese, types.CurrencyJPY)
	require.NoError(t, err)
	for _, it := range report.Items {
		assert.Equal(t, types.ModePerUserHour, it.Result.Mode)
		assert.Equal(t, types.BandingRatio, it.Result.Banding)
	}
}

func TestEvaluateCollectsItemErrors(t *testing.T) {
	s, err := Parse([]byte(`
items:
  - {name: ok, price: 1, period_value: 1, frequency_value: 1}
  - {name: nope, price: abc, period_value: 1, frequency_value: 1}
  - {name: blank, period_value: 1, frequency_value: 1}
`), "bad.yaml", nil)
	require.NoError(t, err)

	_, err = s.Evaluate(types.DefaultOptions(), locale.English, types.CurrencyJPY)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInput))
	assert.Contains(t, err.Error(), `item "nope"`)
	assert.Contains(t, err.Error(), `item "blank"`)
	assert.NotContains(t, err.Error(), `item "ok"`)
}

func TestEvaluateRejectsBadMode(t *testing.T) {
	s := &Scenario{Mode: "per-decade", Entries: []Entry{{Name: "x"}}}
	_, err := s.Evaluate(types.DefaultOptions(), locale.English, types.CurrencyJPY)
	assert.True(t, errors.IsType(err, errors.TypeNotSupported))
}

func TestExampleFiles(t *testing.T) {
	hcl, err := Load(filepath.Join("..", "..", "examples", "gear.hcl"), map[string]string{
		"camera_price": "98000",
		"household":    "3",
	})
	require.NoError(t, err)
	assert.Len(t, hcl.Entries, 3)

	report, err := hcl.Evaluate(types.DefaultOptions(), locale.Japanese, types.CurrencyJPY)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.NonFinite)

	yml, err := Load(filepath.Join("..", "..", "examples", "gear.yaml"), nil)
	require.NoError(t, err)
	assert.Len(t, yml.Entries, 3)
}
