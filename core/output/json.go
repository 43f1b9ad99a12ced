package output

import (
	"encoding/json"
	"io"
	"math"

	"payoff/core/determinism"
	"payoff/core/locale"
	"payoff/core/types"
)

// JSONFormatter renders machine-readable JSON
type JSONFormatter struct{}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// ResultDTO is the JSON shape of one result. encoding/json rejects NaN and
// infinities, so non-finite figures are encoded as null next to a display
// string.
type ResultDTO struct {
	Name      string         `json:"name,omitempty"`
	UnitCost  *float64       `json:"unit_cost"`
	Display   string         `json:"unit_cost_display"`
	Finite    bool           `json:"finite"`
	Category  types.Category `json:"category"`
	Emoji     string         `json:"emoji"`
	Verdict   types.Verdict  `json:"verdict"`
	Message   string         `json:"message"`
	Mode      types.Mode     `json:"mode"`
	Banding   types.Banding  `json:"banding"`
	Breakdown BreakdownDTO   `json:"breakdown"`
	Input     InputDTO       `json:"input"`
}

// InputDTO echoes the validated input. "Infinity" typed into a field
// comes back as null.
type InputDTO struct {
	Price          *float64            `json:"price"`
	PeriodValue    *float64            `json:"period_value"`
	PeriodUnit     types.PeriodUnit    `json:"period_unit"`
	FrequencyValue *float64            `json:"frequency_value"`
	FrequencyUnit  types.FrequencyUnit `json:"frequency_unit"`
	Users          *float64            `json:"users"`
	HoursPerUse    *float64            `json:"hours_per_use"`
}

// BreakdownDTO is the JSON shape of a breakdown
type BreakdownDTO struct {
	PeriodInDays     *float64 `json:"period_in_days"`
	TotalUses        *float64 `json:"total_uses"`
	TotalHours       *float64 `json:"total_hours"`
	CostPerDay       *float64 `json:"cost_per_day"`
	CostRatioPercent *float64 `json:"cost_ratio_percent"`
}

type jsonReport struct {
	Results  []ResultDTO `json:"results"`
	Summary  *Summary    `json:"summary,omitempty"`
	Locale   string      `json:"locale"`
	Currency string      `json:"currency"`
	Metadata Metadata    `json:"metadata"`
}

// NewResultDTO converts an item into its JSON shape
func NewResultDTO(it Item, currency types.Currency, loc locale.Locale) ResultDTO {
	r := it.Result
	b := r.Breakdown
	return ResultDTO{
		Name:     it.Name,
		UnitCost: finite(r.UnitCost),
		Display:  FormatMoney(r.UnitCost, currency, loc),
		Finite:   r.Finite,
		Category: r.Category,
		Emoji:    r.Category.Emoji(),
		Verdict:  r.Verdict,
		Message:  locale.Get(loc).Verdict(r.Verdict),
		Mode:     r.Mode,
		Banding:  r.Banding,
		Breakdown: BreakdownDTO{
			PeriodInDays:     finite(b.PeriodInDays),
			TotalUses:        finite(b.TotalUses),
			TotalHours:       finite(b.TotalHours),
			CostPerDay:       finite(b.CostPerDay),
			CostRatioPercent: finite(b.CostRatioPercent),
		},
		Input: newInputDTO(it.Input),
	}
}

// Render writes the report as indented JSON
func (f *JSONFormatter) Render(w io.Writer, report *Report) error {
	out := jsonReport{
		Results:  make([]ResultDTO, 0, len(report.Items)),
		Summary:  report.Summary,
		Locale:   string(report.Locale),
		Currency: report.Currency.String(),
		Metadata: report.Metadata,
	}
	for _, it := range report.Items {
		out.Results = append(out.Results, NewResultDTO(it, report.Currency, report.Locale))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// finite rounds x to 2 places, or returns nil when x is not finite
func finite(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	v := determinism.Round(x, 2)
	return &v
}

func newInputDTO(in types.Input) InputDTO {
	return InputDTO{
		Price:          exact(in.Price),
		PeriodValue:    exact(in.PeriodValue),
		PeriodUnit:     in.PeriodUnit,
		FrequencyValue: exact(in.FrequencyValue),
		FrequencyUnit:  in.FrequencyUnit,
		Users:          exact(in.Users),
		HoursPerUse:    exact(in.HoursPerUse),
	}
}

// exact returns x unrounded, or nil when x is not finite
func exact(x float64) *float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return nil
	}
	return &x
}
