package cmd

import (
	"github.com/charmbracelet/huh"

	"payoff/core/form"
	"payoff/core/locale"
	"payoff/core/types"
	"payoff/internal/errors"
)

// promptData backs the interactive form
type promptData struct {
	raw    form.RawInput
	detail bool
}

// newPromptForm builds the calculator form. The hours-per-use field is only
// shown in detailed mode.
func newPromptForm(data *promptData, loc locale.Locale) *huh.Form {
	cat := locale.Get(loc)

	numeric := func(field string, value *string) *huh.Input {
		return huh.NewInput().
			Title(cat.Fields[field]).
			Value(value).
			Validate(func(s string) error {
				return form.ValidateField(field, s, loc)
			})
	}

	periodOptions := make([]huh.Option[string], 0, len(types.PeriodUnits))
	for _, u := range types.PeriodUnits {
		periodOptions = append(periodOptions, huh.NewOption(cat.Period(u), string(u)))
	}
	frequencyOptions := make([]huh.Option[string], 0, len(types.FrequencyUnits))
	for _, u := range types.FrequencyUnits {
		frequencyOptions = append(frequencyOptions, huh.NewOption(cat.Frequency(u), string(u)))
	}

	return huh.NewForm(
		huh.NewGroup(
			numeric(locale.FieldPrice, &data.raw.Price),
			numeric(locale.FieldPeriod, &data.raw.PeriodValue),
			huh.NewSelect[string]().
				Options(periodOptions...).
				Value(&data.raw.PeriodUnit),
			numeric(locale.FieldFrequency, &data.raw.FrequencyValue),
			huh.NewSelect[string]().
				Options(frequencyOptions...).
				Value(&data.raw.FrequencyUnit),
			numeric(locale.FieldUsers, &data.raw.Users),
			huh.NewConfirm().
				Title(cat.DetailMode).
				Value(&data.detail),
		).Title(cat.Title),
		huh.NewGroup(
			numeric(locale.FieldHoursPerUse, &data.raw.HoursPerUse),
		).WithHideFunc(func() bool {
			return !data.detail
		}),
	)
}

// promptInput asks for every field, starting from the flag values
func promptInput(initial form.RawInput, loc locale.Locale) (form.RawInput, error) {
	data := &promptData{raw: initial}
	if data.raw.PeriodUnit == "" {
		data.raw.PeriodUnit = string(form.DefaultPeriodUnit)
	}
	if data.raw.FrequencyUnit == "" {
		data.raw.FrequencyUnit = string(form.DefaultFrequencyUnit)
	}
	data.detail = data.raw.HoursPerUse != "" && data.raw.HoursPerUse != form.DefaultHoursPerUse

	if err := newPromptForm(data, loc).Run(); err != nil {
		if err == huh.ErrUserAborted {
			return form.RawInput{}, errors.Input("aborted")
		}
		return form.RawInput{}, errors.Internal("interactive form failed", err)
	}
	return data.raw, nil
}
