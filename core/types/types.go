// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import (
	"strings"

	"payoff/internal/errors"
)

// PeriodUnit is the calendar unit of the usage period
type PeriodUnit string

const (
	PeriodYears  PeriodUnit = "years"
	PeriodMonths PeriodUnit = "months"
	PeriodWeeks  PeriodUnit = "weeks"
	PeriodDays   PeriodUnit = "days"
)

// PeriodUnits lists the accepted period units, longest first
var PeriodUnits = []PeriodUnit{PeriodYears, PeriodMonths, PeriodWeeks, PeriodDays}

// String returns the string representation
func (u PeriodUnit) String() string {
	return string(u)
}

// Days returns the fixed day factor for the unit.
// Unrecognized units count as days.
func (u PeriodUnit) Days() float64 {
	switch u {
	case PeriodYears:
		return 365
	case PeriodMonths:
		return 30
	case PeriodWeeks:
		return 7
	default:
		return 1
	}
}

// ParsePeriodUnit accepts plural or singular spellings ("month", "months")
func ParsePeriodUnit(s string) (PeriodUnit, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, u := range PeriodUnits {
		if v == string(u) || v+"s" == string(u) {
			return u, nil
		}
	}
	return "", errors.NotSupported("period unit", s)
}

// FrequencyUnit is the calendar unit a usage frequency is counted in
type FrequencyUnit string

const (
	FrequencyDay   FrequencyUnit = "day"
	FrequencyWeek  FrequencyUnit = "week"
	FrequencyMonth FrequencyUnit = "month"
)

// FrequencyUnits lists the accepted frequency units
var FrequencyUnits = []FrequencyUnit{FrequencyDay, FrequencyWeek, FrequencyMonth}

// String returns the string representation
func (u FrequencyUnit) String() string {
	return string(u)
}

// SpanDays returns how many days one frequency unit covers.
// Unrecognized units count as days.
func (u FrequencyUnit) SpanDays() float64 {
	switch u {
	case FrequencyMonth:
		return 30
	case FrequencyWeek:
		return 7
	default:
		return 1
	}
}

// ParseFrequencyUnit accepts "week", "weeks", "weekly" and the like
func ParseFrequencyUnit(s string) (FrequencyUnit, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "day", "days", "daily":
		return FrequencyDay, nil
	case "week", "weeks", "weekly":
		return FrequencyWeek, nil
	case "month", "months", "monthly":
		return FrequencyMonth, nil
	}
	return "", errors.NotSupported("frequency unit", s)
}

// Mode selects the denominator a price is divided by
type Mode string

const (
	// ModePerUse divides by the number of uses
	ModePerUse Mode = "per-use"

	// ModePerHour divides by the total hours of use
	ModePerHour Mode = "per-hour"

	// ModePerUserHour divides by total hours times the number of users
	ModePerUserHour Mode = "per-user-hour"
)

// Modes lists the supported calculation modes
var Modes = []Mode{ModePerUse, ModePerHour, ModePerUserHour}

// String returns the string representation
func (m Mode) String() string {
	return string(m)
}

// HourBased reports whether the mode counts hours rather than uses
func (m Mode) HourBased() bool {
	return m == ModePerHour || m == ModePerUserHour
}

// ParseMode parses a calculation mode
func ParseMode(s string) (Mode, error) {
	v := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, m := range Modes {
		if v == m {
			return m, nil
		}
	}
	return "", errors.NotSupported("mode", s)
}

// Banding selects how a result is classified into categories and verdicts
type Banding string

const (
	// BandingAbsolute classifies on the unit cost itself
	BandingAbsolute Banding = "absolute"

	// BandingRatio classifies on the unit cost as a percentage of the price
	BandingRatio Banding = "ratio"
)

// Bandings lists the supported banding schemes
var Bandings = []Banding{BandingAbsolute, BandingRatio}

// String returns the string representation
func (b Banding) String() string {
	return string(b)
}

// ParseBanding parses a banding scheme
func ParseBanding(s string) (Banding, error) {
	v := Banding(strings.ToLower(strings.TrimSpace(s)))
	for _, b := range Bandings {
		if v == b {
			return b, nil
		}
	}
	return "", errors.NotSupported("banding", s)
}

// Input is a validated calculation request
type Input struct {
	// Price is the purchase price in currency units
	Price float64 `json:"price"`

	// PeriodValue and PeriodUnit describe how long the item will be used
	PeriodValue float64    `json:"period_value"`
	PeriodUnit  PeriodUnit `json:"period_unit"`

	// FrequencyValue uses happen per FrequencyUnit
	FrequencyValue float64       `json:"frequency_value"`
	FrequencyUnit  FrequencyUnit `json:"frequency_unit"`

	// Users is the number of people sharing the item
	Users float64 `json:"users"`

	// HoursPerUse is the duration of a single use
	HoursPerUse float64 `json:"hours_per_use"`
}

// NewInput returns an input with the documented defaults for users and hours
func NewInput(price, periodValue float64, periodUnit PeriodUnit, frequencyValue float64, frequencyUnit FrequencyUnit) Input {
	return Input{
		Price:          price,
		PeriodValue:    periodValue,
		PeriodUnit:     periodUnit,
		FrequencyValue: frequencyValue,
		FrequencyUnit:  frequencyUnit,
		Users:          1,
		HoursPerUse:    1,
	}
}

// Options control how an input is normalized and classified
type Options struct {
	Mode    Mode    `json:"mode"`
	Banding Banding `json:"banding"`
}

// DefaultOptions returns per-user-hour with ratio banding
func DefaultOptions() Options {
	return Options{
		Mode:    ModePerUserHour,
		Banding: BandingRatio,
	}
}
