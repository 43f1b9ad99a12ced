// Package normalize converts a purchase and its usage pattern into a unit cost.
// Every function here is pure: no state is kept between calls.
package normalize

import "payoff/core/types"

// PeriodInDays converts a period to days using fixed factors
// (years=365, months=30, weeks=7, days=1).
func PeriodInDays(value float64, unit types.PeriodUnit) float64 {
	return value * unit.Days()
}

// TotalUses converts a number of days to a use count at the given frequency.
func TotalUses(days, frequency float64, unit types.FrequencyUnit) float64 {
	switch unit {
	case types.FrequencyMonth:
		return (days / 30) * frequency
	case types.FrequencyWeek:
		return (days / 7) * frequency
	default:
		return days * frequency
	}
}

// UsesPerDay returns how many uses fall on an average calendar day.
func UsesPerDay(frequency float64, unit types.FrequencyUnit) float64 {
	return frequency / unit.SpanDays()
}

// Denominator returns the usage measure the price is divided by in mode m.
func Denominator(m types.Mode, totalUses, totalHours, users float64) float64 {
	switch m {
	case types.ModePerUse:
		return totalUses
	case types.ModePerHour:
		return totalHours
	default:
		return totalHours * users
	}
}
