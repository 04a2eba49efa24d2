// Package power implements the projection pipeline: country records are
// normalized, scored for current strength, extended with an expenditure
// growth trajectory, and ranked for a chosen target year. Every stage is
// a pure function of its inputs; bad data degrades per country instead of
// failing the batch.
package power

import "fmt"

// Engine runs the full pipeline over an immutable set of source tables.
// The tables are loaded once at startup and shared by reference; every
// call recomputes the derived tables from scratch.
type Engine struct {
	countries []CountryRecord
	budgets   BudgetTable
	codes     CodeLookup
}

// NewEngine creates an engine over the given source tables.
func NewEngine(countries []CountryRecord, budgets BudgetTable, codes CodeLookup) *Engine {
	return &Engine{
		countries: countries,
		budgets:   budgets,
		codes:     codes,
	}
}

// CurrentRanking returns the composite strength ranking for the current
// year, strongest first.
func (e *Engine) CurrentRanking() []StrengthScore {
	return ScoreStrength(e.countries)
}

// Growth returns every scored country with its raw and normalized growth
// scores and the reason any score was degraded to zero.
func (e *Engine) Growth() []ProjectionRecord {
	return EstimateGrowth(e.CurrentRanking(), e.budgets, e.codes)
}

// Rank runs the whole pipeline and returns the projected ranking for the
// target year. Panics from unexpected data shapes are recovered here so
// the caller can show a fallback instead of crashing.
func (e *Engine) Rank(targetYear int) (recs []ProjectionRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			recs = nil
			err = fmt.Errorf("projection pipeline: %v", r)
		}
	}()

	if targetYear == 0 {
		targetYear = DefaultTargetYear
	}
	return ProjectRanking(e.Growth(), targetYear), nil
}
