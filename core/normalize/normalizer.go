package normalize

import (
	"math"

	"payoff/core/types"
)

// Normalize runs the full pipeline for one input.
//
// Zero or negative denominators are not guarded: IEEE division yields
// ±Inf or NaN, which propagate into the result with Finite set to false.
// A finite unit cost with an undefined ratio classifies as zero.
func Normalize(in types.Input, opts types.Options) types.Result {
	if opts.Mode == "" {
		opts.Mode = types.DefaultOptions().Mode
	}
	if opts.Banding == "" {
		opts.Banding = types.DefaultOptions().Banding
	}

	days := PeriodInDays(in.PeriodValue, in.PeriodUnit)
	uses := TotalUses(days, in.FrequencyValue, in.FrequencyUnit)
	hours := uses * in.HoursPerUse

	unitCost := in.Price / Denominator(opts.Mode, uses, hours, in.Users)
	ratio := unitCost / in.Price * 100

	perUse := 1.0
	if opts.Mode.HourBased() {
		perUse = in.HoursPerUse
	}
	costPerDay := unitCost * perUse * UsesPerDay(in.FrequencyValue, in.FrequencyUnit)

	finite := IsFinite(unitCost)
	metric := Metric(opts.Banding, unitCost, ratio)
	if finite && math.IsNaN(metric) {
		// a free item: unit cost 0 and a 0/0 ratio
		metric = 0
	}

	return types.Result{
		UnitCost: unitCost,
		Finite:   finite,
		Category: Classify(opts.Banding, metric),
		Verdict:  Decide(opts.Banding, metric),
		Breakdown: types.Breakdown{
			PeriodInDays:     days,
			TotalUses:        uses,
			TotalHours:       hours,
			CostPerDay:       costPerDay,
			CostRatioPercent: ratio,
		},
		Mode:    opts.Mode,
		Banding: opts.Banding,
	}
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
