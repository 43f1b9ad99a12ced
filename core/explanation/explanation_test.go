package explanation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payoff/core/normalize"
	"payoff/core/output"
	"payoff/core/types"
)

func explain(in types.Input, opts types.Options) *Explanation {
	return Explain(output.Item{Name: "camera", Input: in, Result: normalize.Normalize(in, opts)})
}

func stepValues(e *Explanation) map[string]string {
	out := make(map[string]string, len(e.Steps))
	for _, s := range e.Steps {
		out[s.Name] = s.Value
	}
	return out
}

func TestExplainSteps(t *testing.T) {
	in := types.Input{
		Price: 12000, PeriodValue: 4, PeriodUnit: types.PeriodWeeks,
		FrequencyValue: 3, FrequencyUnit: types.FrequencyWeek,
		Users: 2, HoursPerUse: 5,
	}
	e := explain(in, types.Options{Mode: types.ModePerUserHour, Banding: types.BandingAbsolute})

	assert.Equal(t, "camera", e.Item)
	assert.False(t, e.NonFinite)
	assert.Equal(t, map[string]string{
		"period_in_days":     "28",
		"total_uses":         "12",
		"total_hours":        "60",
		"denominator":        "120",
		"unit_cost":          "100",
		"cost_ratio_percent": "0.8333",
		"cost_per_day":       "214.2857",
		"category":           "🙂 content",
		"verdict":            "worth-it",
	}, stepValues(e))
	assert.Equal(t, "period_in_days", e.Steps[0].Name)
	assert.Equal(t, "4 weeks × 7", e.Steps[0].Formula)
	assert.Equal(t, "total_hours × 2 users", e.Steps[3].Formula)
}

func TestExplainPerUseDenominator(t *testing.T) {
	in := types.NewInput(3000, 30, types.PeriodDays, 1, types.FrequencyDay)
	e := explain(in, types.Options{Mode: types.ModePerUse, Banding: types.BandingRatio})
	assert.Equal(t, "total_uses", e.Steps[3].Formula)
	assert.Equal(t, "30", stepValues(e)["denominator"])
}

func TestExplainNonFinite(t *testing.T) {
	e := explain(types.NewInput(1000, 1, types.PeriodMonths, 0, types.FrequencyWeek), types.DefaultOptions())
	assert.True(t, e.NonFinite)
	assert.Equal(t, "no usage: the denominator is zero", e.NonFiniteReason)
	assert.Equal(t, "∞", stepValues(e)["unit_cost"])
	assert.Contains(t, e.ToNarrative(), "⚠️")

	e = explain(types.NewInput(0, 1, types.PeriodMonths, 0, types.FrequencyWeek), types.DefaultOptions())
	assert.Equal(t, "price and usage are both zero", e.NonFiniteReason)
	assert.Equal(t, "NaN", stepValues(e)["unit_cost"])
}

func TestExplanationRendering(t *testing.T) {
	e := explain(types.NewInput(1000, 1, types.PeriodYears, 1, types.FrequencyDay), types.DefaultOptions())

	data, err := e.ToJSON()
	require.NoError(t, err)
	var decoded Explanation
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, e.Steps, decoded.Steps)

	narrative := e.ToNarrative()
	assert.Contains(t, narrative, "camera\n")
	assert.Contains(t, narrative, "period_in_days     = 1 years × 365 = 365")
}
