package form

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payoff/core/locale"
	"payoff/core/types"
	"payoff/internal/errors"
)

func TestParseValid(t *testing.T) {
	in, err := Parse(RawInput{
		Price:          " 100000 ",
		PeriodValue:    "6",
		PeriodUnit:     "Months",
		FrequencyValue: "2",
		FrequencyUnit:  "weekly",
		Users:          "3",
		HoursPerUse:    "1.5",
	}, locale.English)
	require.NoError(t, err)

	assert.Equal(t, types.Input{
		Price: 100000, PeriodValue: 6, PeriodUnit: types.PeriodMonths,
		FrequencyValue: 2, FrequencyUnit: types.FrequencyWeek,
		Users: 3, HoursPerUse: 1.5,
	}, in)
}

func TestParseAppliesDefaults(t *testing.T) {
	in, err := Parse(RawInput{Price: "5000", PeriodValue: "1", FrequencyValue: "1"}, locale.Japanese)
	require.NoError(t, err)

	assert.Equal(t, types.PeriodMonths, in.PeriodUnit)
	assert.Equal(t, types.FrequencyWeek, in.FrequencyUnit)
	assert.Equal(t, 1.0, in.Users)
	assert.Equal(t, 1.0, in.HoursPerUse)
}

func TestParseReportsEveryField(t *testing.T) {
	_, err := Parse(RawInput{Price: "", PeriodValue: "abc", FrequencyValue: "NaN", Users: "two"}, locale.Japanese)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, errors.IsType(err, errors.TypeInput))

	fields := verr.Fields()
	assert.Equal(t, "価格を入力してください", fields[locale.FieldPrice])
	assert.Equal(t, "期間は数値である必要があります", fields[locale.FieldPeriod])
	assert.Equal(t, "頻度は数値である必要があります", fields[locale.FieldFrequency])
	assert.Equal(t, "人数は数値である必要があります", fields[locale.FieldUsers])
	assert.Equal(t, []string{locale.FieldFrequency, locale.FieldPeriod, locale.FieldPrice, locale.FieldUsers}, verr.FieldNames())
}

func TestParseEnglishMessages(t *testing.T) {
	_, err := Parse(RawInput{Price: "   ", PeriodValue: "1", FrequencyValue: "1"}, locale.English)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{locale.FieldPrice: "Please enter a price"}, verr.Fields())
}

func TestParseRejectsUnknownUnits(t *testing.T) {
	_, err := Parse(RawInput{
		Price: "1", PeriodValue: "1", PeriodUnit: "decades",
		FrequencyValue: "1", FrequencyUnit: "hourly",
	}, locale.English)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"frequencyUnit", "periodUnit"}, verr.FieldNames())
}

func TestParseAcceptsZeroAndInfinity(t *testing.T) {
	in, err := Parse(RawInput{Price: "Infinity", PeriodValue: "1", FrequencyValue: "0"}, locale.English)
	require.NoError(t, err)

	assert.True(t, math.IsInf(in.Price, 1))
	assert.Equal(t, 0.0, in.FrequencyValue)
}

func TestValidateField(t *testing.T) {
	assert.NoError(t, ValidateField(locale.FieldPrice, "1200", locale.Japanese))
	assert.EqualError(t, ValidateField(locale.FieldPrice, " ", locale.Japanese), "価格を入力してください")
	assert.EqualError(t, ValidateField(locale.FieldUsers, "many", locale.English), "Number of users must be a number")
}

func TestParseNumberInfinitySpellings(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1e400", math.Inf(1)},
		{"-1e400", math.Inf(-1)},
		{"+Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
		{" Infinity ", math.Inf(1)},
		{"1e-400", 0},
	}
	for _, tt := range tests {
		v, err := parseNumber(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, v, tt.in)
	}

	for _, bad := range []string{"inf", "+Inf", "infinity", "NaN", "nan", "-INF"} {
		_, err := parseNumber(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseAcceptsOverflowingPrice(t *testing.T) {
	in, err := Parse(RawInput{Price: "1e400", PeriodValue: "1", FrequencyValue: "1"}, locale.English)
	require.NoError(t, err)
	assert.True(t, math.IsInf(in.Price, 1))
}
