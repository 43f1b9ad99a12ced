// Package form validates raw, string-encoded calculator input and turns it
// into a types.Input. The normalization core never sees text.
package form

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/multierr"

	"payoff/core/locale"
	"payoff/core/types"
	"payoff/internal/errors"
)

// Defaults applied when a selector or optional field is left empty
const (
	DefaultPeriodUnit    = types.PeriodMonths
	DefaultFrequencyUnit = types.FrequencyWeek
	DefaultUsers         = "1"
	DefaultHoursPerUse   = "1"
)

// RawInput is calculator input as typed by a user
type RawInput struct {
	Price          string `json:"price" yaml:"price"`
	PeriodValue    string `json:"period_value" yaml:"period_value"`
	PeriodUnit     string `json:"period_unit,omitempty" yaml:"period_unit,omitempty"`
	FrequencyValue string `json:"frequency_value" yaml:"frequency_value"`
	FrequencyUnit  string `json:"frequency_unit,omitempty" yaml:"frequency_unit,omitempty"`
	Users          string `json:"users,omitempty" yaml:"users,omitempty"`
	HoursPerUse    string `json:"hours_per_use,omitempty" yaml:"hours_per_use,omitempty"`
}

// FieldError is a single invalid field
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every invalid field of one input
type ValidationError struct {
	err error
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.err.Error()
}

// Unwrap exposes the domain input error so errors.IsType works
func (e *ValidationError) Unwrap() error {
	return errors.Wrap(errors.TypeInput, "invalid input", e.err)
}

// Fields returns field name to localized message
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string)
	for _, err := range multierr.Errors(e.err) {
		if fe, ok := err.(*FieldError); ok {
			out[fe.Field] = fe.Message
		} else {
			out["_"] = err.Error()
		}
	}
	return out
}

// FieldNames returns the invalid field names in sorted order
func (e *ValidationError) FieldNames() []string {
	fields := e.Fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse validates raw and converts it to a types.Input. All invalid fields
// are reported together in a *ValidationError.
func Parse(raw RawInput, loc locale.Locale) (types.Input, error) {
	cat := locale.Get(loc)
	var errs error

	number := func(field, value string) float64 {
		v, err := parseNumber(value)
		switch {
		case err == errEmpty:
			errs = multierr.Append(errs, &FieldError{Field: field, Message: cat.Required[field]})
		case err != nil:
			errs = multierr.Append(errs, &FieldError{Field: field, Message: cat.NotNumeric[field]})
		}
		return v
	}

	in := types.Input{
		Price:          number(locale.FieldPrice, raw.Price),
		PeriodValue:    number(locale.FieldPeriod, raw.PeriodValue),
		FrequencyValue: number(locale.FieldFrequency, raw.FrequencyValue),
		Users:          number(locale.FieldUsers, orDefault(raw.Users, DefaultUsers)),
		HoursPerUse:    number(locale.FieldHoursPerUse, orDefault(raw.HoursPerUse, DefaultHoursPerUse)),
		PeriodUnit:     DefaultPeriodUnit,
		FrequencyUnit:  DefaultFrequencyUnit,
	}

	if strings.TrimSpace(raw.PeriodUnit) != "" {
		u, err := types.ParsePeriodUnit(raw.PeriodUnit)
		if err != nil {
			errs = multierr.Append(errs, &FieldError{Field: "periodUnit", Message: err.Error()})
		}
		in.PeriodUnit = u
	}
	if strings.TrimSpace(raw.FrequencyUnit) != "" {
		u, err := types.ParseFrequencyUnit(raw.FrequencyUnit)
		if err != nil {
			errs = multierr.Append(errs, &FieldError{Field: "frequencyUnit", Message: err.Error()})
		}
		in.FrequencyUnit = u
	}

	if errs != nil {
		return types.Input{}, &ValidationError{err: errs}
	}
	return in, nil
}

// ValidateField checks a single numeric field and returns the localized
// message as an error. Interactive prompts validate field by field.
func ValidateField(field, value string, loc locale.Locale) error {
	cat := locale.Get(loc)
	_, err := parseNumber(value)
	switch {
	case err == errEmpty:
		return fmt.Errorf("%s", cat.Required[field])
	case err != nil:
		return fmt.Errorf("%s", cat.NotNumeric[field])
	}
	return nil
}

var errEmpty = fmt.Errorf("empty")

// parseNumber follows the page's rule: non-empty and numeric. Infinity is
// spelled "Infinity" with an optional sign, and literals too large for a
// float64 overflow to it. NaN and Go's other inf/nan spellings are rejected.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmpty
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), nil
	case "-Infinity":
		return math.Inf(-1), nil
	}
	if isSpecial(s) {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return v, nil
}

// isSpecial reports inf/nan spellings strconv would accept
func isSpecial(s string) bool {
	v := strings.ToLower(strings.TrimLeft(s, "+-"))
	return v == "inf" || v == "infinity" || v == "nan"
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
