package power

import (
	"math"
	"sort"
)

// Field names of the country-statistics source used for strength scoring,
// in scoring order.
const (
	FieldPopulation = "total_national_populations"
	FieldManpower   = "active_service_military_manpower"
	FieldAircraft   = "total_military_aircraft_strength"
	FieldTanks      = "total_combat_tank_strength"
	FieldNavy       = "navy_strength"
	FieldBudget     = "national_annual_defense_budgets"
	FieldPPP        = "purchasing_power_parities"

	FieldPowerIndex = "pwr_index"
)

// StrengthIndicators are the seven indicators that feed the composite
// strength score. A country missing any of them is excluded entirely.
var StrengthIndicators = []string{
	FieldPopulation,
	FieldManpower,
	FieldAircraft,
	FieldTanks,
	FieldNavy,
	FieldBudget,
	FieldPPP,
}

// CountryRecord is one country's current-year record after normalization.
// Fields holds the indicator values; nil means missing in the source.
type CountryRecord struct {
	Name     string
	Code     string
	PwrIndex *float64
	Fields   map[string]*float64
}

// StrengthScore is the composite current-strength result for one country.
// Standardized keeps the per-indicator z-scores for downstream use.
type StrengthScore struct {
	Country      string              `json:"country"`
	Score        float64             `json:"strength_score"`
	PwrIndex     float64             `json:"pwr_index"`
	Standardized map[string]float64 `json:"-"`
}

// ScoreStrength builds the composite strength ranking: complete-case
// filtering over the seven indicators, per-column standardization across
// the survivors, then the arithmetic mean of the standardized values.
// Returns an empty slice when no country has complete data.
func ScoreStrength(countries []CountryRecord) []StrengthScore {
	// Keep only countries with a value for every indicator.
	var complete []CountryRecord
	for _, c := range countries {
		ok := true
		for _, f := range StrengthIndicators {
			if c.Fields[f] == nil {
				ok = false
				break
			}
		}
		if ok {
			complete = append(complete, c)
		}
	}
	if len(complete) == 0 {
		return nil
	}

	n := float64(len(complete))

	// Column mean and population standard deviation per indicator.
	means := make(map[string]float64, len(StrengthIndicators))
	stds := make(map[string]float64, len(StrengthIndicators))
	for _, f := range StrengthIndicators {
		var sum float64
		for _, c := range complete {
			sum += *c.Fields[f]
		}
		mean := sum / n

		var sq float64
		for _, c := range complete {
			d := *c.Fields[f] - mean
			sq += d * d
		}
		means[f] = mean
		stds[f] = math.Sqrt(sq / n)
	}

	scores := make([]StrengthScore, 0, len(complete))
	for _, c := range complete {
		std := make(map[string]float64, len(StrengthIndicators))
		var total float64
		for _, f := range StrengthIndicators {
			var z float64
			// A constant column standardizes to zero for every row.
			if stds[f] != 0 {
				z = (*c.Fields[f] - means[f]) / stds[f]
			}
			std[f] = z
			total += z
		}

		var pwr float64
		if c.PwrIndex != nil {
			pwr = *c.PwrIndex
		}

		scores = append(scores, StrengthScore{
			Country:      c.Name,
			Score:        total / float64(len(StrengthIndicators)),
			PwrIndex:     pwr,
			Standardized: std,
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores
}
