package power

import "sort"

const (
	// CurrentYear anchors the projection horizon.
	CurrentYear = 2024

	// DefaultTargetYear is used when the caller does not pick a year.
	DefaultTargetYear = 2047

	// pwrPenalty discounts the published power index, where lower
	// already means stronger.
	pwrPenalty = 0.2

	nearStrengthWeight = 0.7
	nearGrowthWeight   = 0.3
	farStrengthWeight  = 0.5
	farGrowthWeight    = 0.5

	// farHorizon is the horizon beyond which growth counts as much as
	// current strength. The switch is strict: horizon 10 is still near.
	farHorizon = 10
)

// Weights returns the strength and growth weights for a target year.
func Weights(targetYear int) (strength, growth float64) {
	if targetYear-CurrentYear > farHorizon {
		return farStrengthWeight, farGrowthWeight
	}
	return nearStrengthWeight, nearGrowthWeight
}

// ProjectRanking blends strength, normalized growth and the power index
// into a projection score and orders countries by it, best first. Pure:
// the input slice is not modified, and an empty input yields an empty
// ranking.
func ProjectRanking(recs []ProjectionRecord, targetYear int) []ProjectionRecord {
	sw, gw := Weights(targetYear)

	out := make([]ProjectionRecord, len(recs))
	copy(out, recs)
	for i := range out {
		out[i].ProjectionScore = sw*out[i].StrengthScore +
			gw*out[i].GrowthNormalized -
			pwrPenalty*out[i].PwrIndex
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProjectionScore > out[j].ProjectionScore
	})
	return out
}
