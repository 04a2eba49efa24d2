// Package dataset builds the immutable in-memory snapshot of the source
// tables. It is loaded once at process start and shared by reference;
// every derived view is recomputed from it, nothing mutates it.
package dataset

import (
	"context"
	"fmt"

	"github.com/evgray/milscope/internal/store"
	"github.com/evgray/milscope/pkg/power"
)

// Dataset is the process-wide snapshot of all source tables.
type Dataset struct {
	// Countries holds normalized country records for the scorer.
	Countries []power.CountryRecord

	// Raw keeps every published field per country for the comparison
	// views, values exactly as stored.
	Raw map[string]power.RawRecord

	// Budgets and Codes feed the growth estimator.
	Budgets power.BudgetTable
	Codes   power.CodeLookup

	// Revenue and Trade back the company and trade views.
	Revenue []store.RevenueEntry
	Trade   []store.TradeEntry
}

// Load reads all source tables from the store and builds the snapshot.
// The code lookup is derived from the country table itself, since the
// budget dataset keys countries by code instead of name.
func Load(ctx context.Context, st store.Store) (*Dataset, error) {
	countries, err := st.ListCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load countries: %w", err)
	}

	budgets, err := st.ListBudgetEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load budget series: %w", err)
	}

	revenue, err := st.ListRevenueEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load company revenue: %w", err)
	}

	trade, err := st.ListTradeEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trade flows: %w", err)
	}

	ds := &Dataset{
		Raw:     make(map[string]power.RawRecord, len(countries)),
		Budgets: make(power.BudgetTable),
		Codes:   make(power.CodeLookup, len(countries)),
		Revenue: revenue,
		Trade:   trade,
	}

	for _, row := range countries {
		raw := make(power.RawRecord, len(row.Stats)+1)
		for k, v := range row.Stats {
			raw[k] = v
		}
		raw[power.FieldPowerIndex] = row.PwrIndex
		ds.Raw[row.Name] = raw

		ds.Countries = append(ds.Countries, power.CountryRecord{
			Name:     row.Name,
			Code:     row.Code,
			PwrIndex: power.ParseNumber(row.PwrIndex),
			Fields:   power.NormalizeRecord(raw, power.StrengthIndicators),
		})
		if row.Code != "" {
			ds.Codes[row.Name] = row.Code
		}
	}

	for _, e := range budgets {
		v := power.ParseNumber(e.Value)
		if v == nil {
			continue // null year, excluded from every series
		}
		series, ok := ds.Budgets[e.Code]
		if !ok {
			series = make(map[int]float64)
			ds.Budgets[e.Code] = series
		}
		series[e.Year] = *v
	}

	return ds, nil
}

// CountryNames returns every country in the snapshot, in table order.
func (d *Dataset) CountryNames() []string {
	names := make([]string, 0, len(d.Countries))
	for _, c := range d.Countries {
		names = append(names, c.Name)
	}
	return names
}
