package power_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgray/milscope/pkg/power"
)

// TestEngine_EndToEndScenario runs the whole pipeline over three
// synthetic countries: Alpha with a steadily rising budget, Bravo with a
// flat one, and Charlie missing one strength indicator.
func TestEngine_EndToEndScenario(t *testing.T) {
	alpha := record("Alpha", 0.2, 300, 2000, 4000, 5000, 700, 800e9, 25e12)
	bravo := record("Bravo", 0.3, 140, 1000, 3000, 4000, 600, 300e9, 20e12)
	charlie := record("Charlie", 0.4, 50, 500, 1000, 2000, 300, 100e9, 5e12)
	charlie.Fields[power.FieldAircraft] = nil

	budgets := power.BudgetTable{
		"ALP": linearSeries(2000, 2020, 100e9, 10e9),
		"BRV": linearSeries(2000, 2020, 100e9, 0),
	}
	codes := power.CodeLookup{"Alpha": "ALP", "Bravo": "BRV", "Charlie": "CHR"}

	engine := power.NewEngine([]power.CountryRecord{alpha, bravo, charlie}, budgets, codes)

	current := engine.CurrentRanking()
	require.Len(t, current, 2, "Charlie must be excluded")
	assert.Equal(t, "Alpha", current[0].Country)

	growth := engine.Growth()
	require.Len(t, growth, 2)
	assert.Greater(t, growth[0].GrowthScore, 0.0, "Alpha grows")
	assert.InDelta(t, 0.0, growth[1].GrowthScore, 1e-6, "Bravo is flat")

	ranked, err := engine.Rank(2047)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Alpha", ranked[0].Country)
	assert.Equal(t, "Bravo", ranked[1].Country)
}

// TestEngine_RankIsIdempotent verifies two runs over the same snapshot
// and target year produce identical ordered output.
func TestEngine_RankIsIdempotent(t *testing.T) {
	countries := []power.CountryRecord{
		record("Alpha", 0.2, 300, 2000, 4000, 5000, 700, 800e9, 25e12),
		record("Bravo", 0.3, 140, 1000, 3000, 4000, 600, 300e9, 20e12),
	}
	budgets := power.BudgetTable{"ALP": linearSeries(2000, 2020, 100e9, 5e9)}
	codes := power.CodeLookup{"Alpha": "ALP", "Bravo": "BRV"}

	engine := power.NewEngine(countries, budgets, codes)

	first, err := engine.Rank(2047)
	require.NoError(t, err)
	second, err := engine.Rank(2047)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestEngine_RankDefaultsTargetYear verifies target year 0 falls back to
// the default projection year.
func TestEngine_RankDefaultsTargetYear(t *testing.T) {
	countries := []power.CountryRecord{
		record("Alpha", 0.2, 300, 2000, 4000, 5000, 700, 800e9, 25e12),
		record("Bravo", 0.3, 140, 1000, 3000, 4000, 600, 300e9, 20e12),
	}
	engine := power.NewEngine(countries, power.BudgetTable{}, power.CodeLookup{})

	byDefault, err := engine.Rank(0)
	require.NoError(t, err)
	explicit, err := engine.Rank(power.DefaultTargetYear)
	require.NoError(t, err)

	assert.Equal(t, explicit, byDefault)
}

// TestEngine_EmptyDataset verifies the pipeline tolerates having nothing
// to rank.
func TestEngine_EmptyDataset(t *testing.T) {
	engine := power.NewEngine(nil, power.BudgetTable{}, power.CodeLookup{})

	assert.Empty(t, engine.CurrentRanking())

	ranked, err := engine.Rank(2047)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}
