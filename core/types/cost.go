// Package types - Result types
package types

import (
	"strings"

	"payoff/internal/errors"
)

// Currency represents a currency code
type Currency string

const (
	CurrencyJPY Currency = "JPY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// Currencies lists the supported currencies
var Currencies = []Currency{CurrencyJPY, CurrencyUSD, CurrencyEUR, CurrencyGBP}

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Symbol returns the display symbol for the currency
func (c Currency) Symbol() string {
	switch c {
	case CurrencyJPY:
		return "¥"
	case CurrencyUSD:
		return "$"
	case CurrencyEUR:
		return "€"
	case CurrencyGBP:
		return "£"
	default:
		return string(c) + " "
	}
}

// ParseCurrency parses an ISO currency code
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CurrencyJPY, CurrencyUSD, CurrencyEUR, CurrencyGBP:
		return c, nil
	}
	return "", errors.NotSupported("currency", s)
}

// Category is an ordinal severity band, from least to most severe
type Category int

const (
	CategoryDelighted Category = iota
	CategoryHappy
	CategoryContent
	CategoryDoubtful
	CategoryAnxious
	CategoryShocked
)

// Categories lists every band in ascending severity
var Categories = []Category{
	CategoryDelighted,
	CategoryHappy,
	CategoryContent,
	CategoryDoubtful,
	CategoryAnxious,
	CategoryShocked,
}

var categoryNames = [...]string{"delighted", "happy", "content", "doubtful", "anxious", "shocked"}

var categoryEmoji = [...]string{"🤩", "😄", "🙂", "🤨", "😰", "😱"}

// String returns the band name
func (c Category) String() string {
	if c < CategoryDelighted || c > CategoryShocked {
		return "unknown"
	}
	return categoryNames[c]
}

// Emoji returns the glyph shown for the band
func (c Category) Emoji() string {
	if c < CategoryDelighted || c > CategoryShocked {
		return "🤔"
	}
	return categoryEmoji[c]
}

// Severity returns the ordinal position, 0 being the cheapest band
func (c Category) Severity() int {
	return int(c)
}

// MarshalText encodes the band by name
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a band name
func (c *Category) UnmarshalText(text []byte) error {
	for i, name := range categoryNames {
		if string(text) == name {
			*c = Category(i)
			return nil
		}
	}
	return errors.NotSupported("category", string(text))
}

// Verdict is the qualitative judgement on a unit cost
type Verdict string

const (
	VerdictWorthIt  Verdict = "worth-it"
	VerdictWasteful Verdict = "wasteful"
)

// String returns the string representation
func (v Verdict) String() string {
	return string(v)
}

// Breakdown holds the intermediate figures of a calculation
type Breakdown struct {
	// PeriodInDays is the usage period normalized to days
	PeriodInDays float64 `json:"period_in_days"`

	// TotalUses is the number of uses over the period
	TotalUses float64 `json:"total_uses"`

	// TotalHours is TotalUses times the hours per use
	TotalHours float64 `json:"total_hours"`

	// CostPerDay spreads the unit cost over calendar days of use
	CostPerDay float64 `json:"cost_per_day"`

	// CostRatioPercent is the unit cost as a percentage of the price
	CostRatioPercent float64 `json:"cost_ratio_percent"`
}

// Result is the output of one normalization
type Result struct {
	// UnitCost is the price divided by the mode's denominator
	UnitCost float64 `json:"unit_cost"`

	// Finite is false when UnitCost is NaN or infinite
	Finite bool `json:"finite"`

	Category  Category  `json:"category"`
	Verdict   Verdict   `json:"verdict"`
	Breakdown Breakdown `json:"breakdown"`

	Mode    Mode    `json:"mode"`
	Banding Banding `json:"banding"`
}

// Wasteful reports whether the verdict is negative
func (r Result) Wasteful() bool {
	return r.Verdict == VerdictWasteful
}
