// Package explanation - Calculation explanation
// Exposes HOW a unit cost was reached, not just the figure.
package explanation

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"payoff/core/determinism"
	"payoff/core/normalize"
	"payoff/core/output"
	"payoff/core/types"
)

// Explanation lists the steps of one calculation
type Explanation struct {
	Item    string        `json:"item,omitempty"`
	Mode    types.Mode    `json:"mode"`
	Banding types.Banding `json:"banding"`

	// Steps are in evaluation order
	Steps []Step `json:"steps"`

	// NonFinite is set when the unit cost is NaN or infinite
	NonFinite       bool   `json:"non_finite,omitempty"`
	NonFiniteReason string `json:"non_finite_reason,omitempty"`
}

// Step is one intermediate figure and the formula that produced it
type Step struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
	Value   string `json:"value"`
}

// Explain reconstructs the steps behind it.Result from it.Input
func Explain(it output.Item) *Explanation {
	in, r := it.Input, it.Result
	b := r.Breakdown
	e := &Explanation{Item: it.Name, Mode: r.Mode, Banding: r.Banding}

	e.add("period_in_days",
		fmt.Sprintf("%s %s × %s", num(in.PeriodValue), in.PeriodUnit, num(in.PeriodUnit.Days())),
		num(b.PeriodInDays))
	e.add("total_uses",
		fmt.Sprintf("%s days ÷ %s × %s per %s", num(b.PeriodInDays), num(in.FrequencyUnit.SpanDays()), num(in.FrequencyValue), in.FrequencyUnit),
		num(b.TotalUses))
	e.add("total_hours",
		fmt.Sprintf("%s uses × %s hours", num(b.TotalUses), num(in.HoursPerUse)),
		num(b.TotalHours))

	denominator := normalize.Denominator(r.Mode, b.TotalUses, b.TotalHours, in.Users)
	var denomFormula string
	switch r.Mode {
	case types.ModePerUse:
		denomFormula = "total_uses"
	case types.ModePerHour:
		denomFormula = "total_hours"
	default:
		denomFormula = fmt.Sprintf("total_hours × %s users", num(in.Users))
	}
	e.add("denominator", denomFormula, num(denominator))
	e.add("unit_cost", fmt.Sprintf("%s ÷ %s", num(in.Price), num(denominator)), num(r.UnitCost))
	e.add("cost_ratio_percent", "unit_cost ÷ price × 100", num(b.CostRatioPercent))
	e.add("cost_per_day", "unit_cost × per-use units × uses per day", num(b.CostPerDay))

	metric := normalize.Metric(r.Banding, r.UnitCost, b.CostRatioPercent)
	limits := normalize.Thresholds(r.Banding)
	parts := make([]string, len(limits))
	for i, l := range limits {
		parts[i] = num(l)
	}
	e.add("category",
		fmt.Sprintf("%s %s against %s", r.Banding, num(metric), strings.Join(parts, "/")),
		fmt.Sprintf("%s %s", r.Category.Emoji(), r.Category))
	e.add("verdict", fmt.Sprintf("%s %s", r.Banding, num(metric)), r.Verdict.String())

	if !r.Finite {
		e.NonFinite = true
		switch {
		case math.IsNaN(r.UnitCost):
			e.NonFiniteReason = "price and usage are both zero"
		case denominator == 0:
			e.NonFiniteReason = "no usage: the denominator is zero"
		default:
			e.NonFiniteReason = "an input is infinite"
		}
	}
	return e
}

func (e *Explanation) add(name, formula, value string) {
	e.Steps = append(e.Steps, Step{Name: name, Formula: formula, Value: value})
}

// ToJSON returns JSON representation
func (e *Explanation) ToJSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}

// ToNarrative returns the steps as aligned text lines
func (e *Explanation) ToNarrative() string {
	var sb strings.Builder
	if e.Item != "" {
		sb.WriteString(e.Item + "\n")
	}
	width := 0
	for _, s := range e.Steps {
		if len(s.Name) > width {
			width = len(s.Name)
		}
	}
	for _, s := range e.Steps {
		fmt.Fprintf(&sb, "  %-*s = %s = %s\n", width, s.Name, s.Formula, s.Value)
	}
	if e.NonFinite {
		fmt.Fprintf(&sb, "  ⚠️ %s\n", e.NonFiniteReason)
	}
	return sb.String()
}

// num renders intermediate figures with up to four decimals
func num(x float64) string {
	s := determinism.FormatAmount(x, 4)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
