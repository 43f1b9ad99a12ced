package normalize

import (
	"math"

	"payoff/core/types"
)

// Band thresholds, most severe first. A metric strictly greater than
// thresholds[i] falls into the band at severity Shocked-i.
var (
	absoluteThresholds = [5]float64{1000, 500, 100, 50, 10}
	ratioThresholds    = [5]float64{50, 25, 10, 5, 1}
)

// Verdict thresholds: a metric strictly above this is wasteful.
const (
	AbsoluteVerdictThreshold = 100.0
	RatioVerdictThreshold    = 25.0
)

// Thresholds returns the band boundaries for a banding, most severe first.
func Thresholds(b types.Banding) [5]float64 {
	if b == types.BandingAbsolute {
		return absoluteThresholds
	}
	return ratioThresholds
}

// Metric picks the figure a banding classifies on.
func Metric(b types.Banding, unitCost, costRatioPercent float64) float64 {
	if b == types.BandingAbsolute {
		return unitCost
	}
	return costRatioPercent
}

// Classify maps a metric into one of the six bands. NaN is treated as the
// most severe band.
func Classify(b types.Banding, metric float64) types.Category {
	if math.IsNaN(metric) {
		return types.CategoryShocked
	}
	for i, limit := range Thresholds(b) {
		if metric > limit {
			return types.CategoryShocked - types.Category(i)
		}
	}
	return types.CategoryDelighted
}

// Decide selects the verdict for a metric with a single threshold.
// NaN is wasteful.
func Decide(b types.Banding, metric float64) types.Verdict {
	limit := RatioVerdictThreshold
	if b == types.BandingAbsolute {
		limit = AbsoluteVerdictThreshold
	}
	if math.IsNaN(metric) || metric > limit {
		return types.VerdictWasteful
	}
	return types.VerdictWorthIt
}
