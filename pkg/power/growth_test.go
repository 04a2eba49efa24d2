package power_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgray/milscope/pkg/power"
)

func strengthRow(country string) power.StrengthScore {
	return power.StrengthScore{Country: country, Score: 1}
}

// linearSeries builds year→value with value = base + slope*(year-start).
func linearSeries(start, end int, base, slope float64) map[int]float64 {
	series := make(map[int]float64)
	for y := start; y <= end; y++ {
		series[y] = base + slope*float64(y-start)
	}
	return series
}

// TestEstimateGrowth_LinearSeriesRecoversSlope verifies that a perfectly
// linear expenditure series yields exactly its slope as the growth score.
func TestEstimateGrowth_LinearSeriesRecoversSlope(t *testing.T) {
	budgets := power.BudgetTable{"AAA": linearSeries(2000, 2020, 100, 10)}
	codes := power.CodeLookup{"Alpha": "AAA"}

	recs := power.EstimateGrowth([]power.StrengthScore{strengthRow("Alpha")}, budgets, codes)

	require.Len(t, recs, 1)
	assert.InDelta(t, 10.0, recs[0].GrowthScore, 1e-9)
	assert.Equal(t, power.GrowthOK, recs[0].GrowthReason)
	assert.Equal(t, 21, recs[0].ValidYears)
}

// TestEstimateGrowth_IndexIsSequencePosition verifies the regression runs
// over the 0-based position within the valid-year sequence, not the
// calendar year: a series sampled every other year keeps its per-step
// increment as the slope.
func TestEstimateGrowth_IndexIsSequencePosition(t *testing.T) {
	series := make(map[int]float64)
	for i, y := 0, 2000; y <= 2010; i, y = i+1, y+2 {
		series[y] = 50 + 10*float64(i) // +10 per sample, +5 per calendar year
	}
	budgets := power.BudgetTable{"AAA": series}
	codes := power.CodeLookup{"Alpha": "AAA"}

	recs := power.EstimateGrowth([]power.StrengthScore{strengthRow("Alpha")}, budgets, codes)

	require.Len(t, recs, 1)
	assert.Equal(t, 6, recs[0].ValidYears)
	assert.InDelta(t, 10.0, recs[0].GrowthScore, 1e-9)
}

// TestEstimateGrowth_WindowIsClosed2000To2020 verifies years outside the
// fitting window are ignored.
func TestEstimateGrowth_WindowIsClosed2000To2020(t *testing.T) {
	series := linearSeries(2000, 2020, 100, 2)
	series[1990] = 1e9 // would wreck the fit if included
	series[2023] = -1e9
	budgets := power.BudgetTable{"AAA": series}
	codes := power.CodeLookup{"Alpha": "AAA"}

	recs := power.EstimateGrowth([]power.StrengthScore{strengthRow("Alpha")}, budgets, codes)

	require.Len(t, recs, 1)
	assert.Equal(t, 21, recs[0].ValidYears)
	assert.InDelta(t, 2.0, recs[0].GrowthScore, 1e-9)
}

// TestEstimateGrowth_TooFewYearsIsZero verifies the < 6 valid years
// sentinel regardless of the actual values.
func TestEstimateGrowth_TooFewYearsIsZero(t *testing.T) {
	budgets := power.BudgetTable{"AAA": linearSeries(2000, 2004, 100, 50)}
	codes := power.CodeLookup{"Alpha": "AAA"}

	recs := power.EstimateGrowth([]power.StrengthScore{strengthRow("Alpha")}, budgets, codes)

	require.Len(t, recs, 1)
	assert.Zero(t, recs[0].GrowthScore)
	assert.Equal(t, power.GrowthTooFewYears, recs[0].GrowthReason)
	assert.Equal(t, 5, recs[0].ValidYears)
}

// TestEstimateGrowth_DegradedReasons verifies lookup failures degrade per
// country with an inspectable reason and never abort the batch.
func TestEstimateGrowth_DegradedReasons(t *testing.T) {
	budgets := power.BudgetTable{"AAA": linearSeries(2000, 2020, 100, 10)}
	codes := power.CodeLookup{"Alpha": "AAA", "Beta": "BBB"}

	recs := power.EstimateGrowth([]power.StrengthScore{
		strengthRow("Alpha"),
		strengthRow("Beta"),    // code resolves but no series
		strengthRow("Unknown"), // no code at all
	}, budgets, codes)

	require.Len(t, recs, 3)
	assert.Equal(t, power.GrowthOK, recs[0].GrowthReason)
	assert.Equal(t, power.GrowthNoSeries, recs[1].GrowthReason)
	assert.Zero(t, recs[1].GrowthScore)
	assert.Equal(t, power.GrowthNoCode, recs[2].GrowthReason)
	assert.Zero(t, recs[2].GrowthScore)
}

// TestEstimateGrowth_NormalizationSpansSet verifies min-max scaling: the
// fastest grower maps to 1, the slowest to 0, degraded rows included.
func TestEstimateGrowth_NormalizationSpansSet(t *testing.T) {
	budgets := power.BudgetTable{
		"AAA": linearSeries(2000, 2020, 100, 10),
		"BBB": linearSeries(2000, 2020, 100, 0),
	}
	codes := power.CodeLookup{"Alpha": "AAA", "Beta": "BBB"}

	recs := power.EstimateGrowth([]power.StrengthScore{
		strengthRow("Alpha"), strengthRow("Beta"),
	}, budgets, codes)

	require.Len(t, recs, 2)
	assert.InDelta(t, 1.0, recs[0].GrowthNormalized, 1e-9)
	assert.InDelta(t, 0.0, recs[1].GrowthNormalized, 1e-9)
}

// TestEstimateGrowth_AllEqualNormalizesToZero verifies the max == min
// guard: identical growth everywhere normalizes to 0, not NaN.
func TestEstimateGrowth_AllEqualNormalizesToZero(t *testing.T) {
	budgets := power.BudgetTable{
		"AAA": linearSeries(2000, 2020, 100, 0),
		"BBB": linearSeries(2000, 2020, 500, 0),
	}
	codes := power.CodeLookup{"Alpha": "AAA", "Beta": "BBB"}

	recs := power.EstimateGrowth([]power.StrengthScore{
		strengthRow("Alpha"), strengthRow("Beta"),
	}, budgets, codes)

	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.Zero(t, r.GrowthNormalized)
		assert.False(t, r.GrowthNormalized != r.GrowthNormalized, "must not be NaN")
	}
}

// TestEstimateGrowth_EmptyInput verifies an empty scored set passes
// through as an empty result.
func TestEstimateGrowth_EmptyInput(t *testing.T) {
	assert.Empty(t, power.EstimateGrowth(nil, power.BudgetTable{}, power.CodeLookup{}))
}
