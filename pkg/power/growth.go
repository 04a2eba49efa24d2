package power

import (
	"math"
	"sort"
)

// Expenditure window used for trend fitting, inclusive on both ends.
const (
	GrowthWindowStart = 2000
	GrowthWindowEnd   = 2020

	// MinValidYears is the smallest series a regression is fitted on.
	MinValidYears = 6
)

// BudgetTable maps country code to its expenditure series. Only years
// with a published value appear; absent years are nulls in the source.
type BudgetTable map[string]map[int]float64

// CodeLookup maps a country name to the code used by the budget dataset.
// The two sources key countries differently, so the join is explicit.
type CodeLookup map[string]string

// GrowthReason explains why a country's growth score was (or was not)
// degraded to the zero sentinel.
type GrowthReason string

const (
	GrowthOK          GrowthReason = "ok"
	GrowthNoCode      GrowthReason = "no_country_code"
	GrowthNoSeries    GrowthReason = "no_series"
	GrowthTooFewYears GrowthReason = "too_few_years"
	GrowthFitError    GrowthReason = "fit_error"
)

// ProjectionRecord is a strength score extended with the growth trajectory
// and, after ranking, the projection score.
type ProjectionRecord struct {
	Country          string       `json:"country"`
	StrengthScore    float64      `json:"strength_score"`
	PwrIndex         float64      `json:"pwr_index"`
	GrowthScore      float64      `json:"growth_score"`
	GrowthNormalized float64      `json:"growth_score_normalized"`
	GrowthReason     GrowthReason `json:"growth_reason"`
	ValidYears       int          `json:"valid_years"`
	ProjectionScore  float64      `json:"projection_score"`
}

// EstimateGrowth derives a growth score for every scored country from its
// defense-expenditure series: the OLS slope over the valid years in the
// fitting window, then min-max normalized across the whole set. A country
// whose series cannot be fitted keeps a zero score and records why; one
// bad country never aborts the batch.
func EstimateGrowth(scores []StrengthScore, budgets BudgetTable, codes CodeLookup) []ProjectionRecord {
	recs := make([]ProjectionRecord, 0, len(scores))
	for _, s := range scores {
		rec := ProjectionRecord{
			Country:       s.Country,
			StrengthScore: s.Score,
			PwrIndex:      s.PwrIndex,
		}
		rec.GrowthScore, rec.ValidYears, rec.GrowthReason = fitGrowth(s.Country, budgets, codes)
		recs = append(recs, rec)
	}

	normalizeGrowth(recs)
	return recs
}

// fitGrowth resolves one country's series and fits the trend, degrading to
// the zero sentinel on any failure.
func fitGrowth(country string, budgets BudgetTable, codes CodeLookup) (float64, int, GrowthReason) {
	code, ok := codes[country]
	if !ok || code == "" {
		return 0, 0, GrowthNoCode
	}

	series, ok := budgets[code]
	if !ok || len(series) == 0 {
		return 0, 0, GrowthNoSeries
	}

	// Valid years inside the window, ascending.
	var years []int
	for y := range series {
		if y >= GrowthWindowStart && y <= GrowthWindowEnd {
			years = append(years, y)
		}
	}
	sort.Ints(years)

	if len(years) < MinValidYears {
		return 0, len(years), GrowthTooFewYears
	}

	values := make([]float64, len(years))
	for i, y := range years {
		values[i] = series[y]
	}

	slope := olsSlope(values)
	if math.IsNaN(slope) || math.IsInf(slope, 0) {
		return 0, len(years), GrowthFitError
	}
	return slope, len(years), GrowthOK
}

// olsSlope fits y against its 0-based position and returns the slope.
// The x axis is the position within the valid-year sequence, not the
// calendar year.
func olsSlope(y []float64) float64 {
	n := float64(len(y))

	var sumX, sumY float64
	for i, v := range y {
		sumX += float64(i)
		sumY += v
	}
	meanX := sumX / n
	meanY := sumY / n

	var num, den float64
	for i, v := range y {
		dx := float64(i) - meanX
		num += dx * (v - meanY)
		den += dx * dx
	}
	if den == 0 {
		return math.NaN()
	}
	return num / den
}

// normalizeGrowth min-max scales the raw growth scores in place. When
// every score is identical the normalized value is zero for all rows.
func normalizeGrowth(recs []ProjectionRecord) {
	if len(recs) == 0 {
		return
	}

	min, max := recs[0].GrowthScore, recs[0].GrowthScore
	for _, r := range recs[1:] {
		if r.GrowthScore < min {
			min = r.GrowthScore
		}
		if r.GrowthScore > max {
			max = r.GrowthScore
		}
	}

	if max <= min {
		for i := range recs {
			recs[i].GrowthNormalized = 0
		}
		return
	}
	for i := range recs {
		recs[i].GrowthNormalized = (recs[i].GrowthScore - min) / (max - min)
	}
}
