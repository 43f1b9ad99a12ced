// Package locale holds the user-facing copy for the two supported locales.
package locale

import (
	"strings"

	"payoff/core/types"
	"payoff/internal/errors"
)

// Locale identifies a message catalog
type Locale string

const (
	Japanese Locale = "ja"
	English  Locale = "en"
)

// Default is the locale of the original site
const Default = Japanese

// Locales lists the supported locales
var Locales = []Locale{Japanese, English}

// Parse accepts "ja", "en" and region-qualified tags such as "en-US"
func Parse(s string) (Locale, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	for _, l := range Locales {
		if tag == string(l) {
			return l, nil
		}
	}
	return "", errors.NotSupported("locale", s)
}

// Catalog is the set of strings shown for one locale
type Catalog struct {
	Title string

	WorthIt  string
	Wasteful string

	// Required and NotNumeric are keyed by form field name
	Required   map[string]string
	NotNumeric map[string]string

	// Field labels keyed by form field name
	Fields map[string]string

	PeriodUnits    map[types.PeriodUnit]string
	FrequencyUnits map[types.FrequencyUnit]string

	// UnitCost headings keyed by mode
	UnitCost map[types.Mode]string

	TotalHours  string
	TotalUses   string
	CostPerDay  string
	CostRatio   string
	HoursSuffix string
	UsesSuffix  string
	NotFinite   string
	DetailMode  string
	Calculate   string
}

// Get returns the catalog for l, falling back to Default
func Get(l Locale) *Catalog {
	if c, ok := catalogs[l]; ok {
		return c
	}
	return catalogs[Default]
}

// Verdict returns the message for a verdict
func (c *Catalog) Verdict(v types.Verdict) string {
	if v == types.VerdictWasteful {
		return c.Wasteful
	}
	return c.WorthIt
}

// Period returns the label for a period unit
func (c *Catalog) Period(u types.PeriodUnit) string {
	if s, ok := c.PeriodUnits[u]; ok {
		return s
	}
	return u.String()
}

// Frequency returns the label for a frequency unit
func (c *Catalog) Frequency(u types.FrequencyUnit) string {
	if s, ok := c.FrequencyUnits[u]; ok {
		return s
	}
	return u.String()
}

// Heading returns the unit cost heading for a mode
func (c *Catalog) Heading(m types.Mode) string {
	if s, ok := c.UnitCost[m]; ok {
		return s
	}
	return c.UnitCost[types.ModePerUserHour]
}
