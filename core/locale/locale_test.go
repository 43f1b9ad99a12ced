package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payoff/core/types"
)

func TestParse(t *testing.T) {
	for in, want := range map[string]Locale{"ja": Japanese, "JA-jp": Japanese, "en": English, "en_US": English} {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := Parse("fr")
	assert.Error(t, err)
}

func TestCatalogsAreComplete(t *testing.T) {
	fields := []string{FieldPrice, FieldPeriod, FieldFrequency, FieldUsers, FieldHoursPerUse}
	for _, l := range Locales {
		c := Get(l)
		assert.NotEmpty(t, c.WorthIt, l)
		assert.NotEqual(t, c.WorthIt, c.Wasteful, l)
		for _, f := range fields {
			assert.NotEmpty(t, c.Required[f], "%s required %s", l, f)
			assert.NotEmpty(t, c.NotNumeric[f], "%s numeric %s", l, f)
			assert.NotEmpty(t, c.Fields[f], "%s label %s", l, f)
		}
		for _, u := range types.PeriodUnits {
			assert.Contains(t, c.PeriodUnits, u)
		}
		for _, u := range types.FrequencyUnits {
			assert.Contains(t, c.FrequencyUnits, u)
		}
		for _, m := range types.Modes {
			assert.NotEmpty(t, c.Heading(m))
		}
	}
}

func TestVerdictMessages(t *testing.T) {
	ja := Get(Japanese)
	assert.Equal(t, "ええ感じや！元取れてるで！", ja.Verdict(types.VerdictWorthIt))
	assert.Equal(t, "もったいない！もっと使わなアカン！", ja.Verdict(types.VerdictWasteful))

	assert.Same(t, Get(Default), Get(Locale("xx")))
}
