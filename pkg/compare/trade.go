package compare

import (
	"fmt"
	"sort"

	"github.com/evgray/milscope/internal/dataset"
)

// TradeReport is one country's arms-trade series with totals, all in USD
// millions. A year with no published figure counts as zero, matching how
// the source treats missing trade values.
type TradeReport struct {
	Country        string      `json:"country"`
	Years          []TradeYear `json:"years"`
	TotalExports   float64     `json:"total_exports"`
	TotalImports   float64     `json:"total_imports"`
	OverallBalance float64     `json:"overall_balance"`
}

// TradeYear is one financial year of exports, imports and their balance.
type TradeYear struct {
	Year    int     `json:"year"`
	Exports float64 `json:"exports"`
	Imports float64 `json:"imports"`
	Balance float64 `json:"balance"`
}

// TradeBalance builds the trade report for one country.
func TradeBalance(ds *dataset.Dataset, country string) (*TradeReport, error) {
	report := &TradeReport{Country: country}

	for _, e := range ds.Trade {
		if e.Country != country {
			continue
		}
		var exports, imports float64
		if e.Exports != nil {
			exports = *e.Exports
		}
		if e.Imports != nil {
			imports = *e.Imports
		}
		report.Years = append(report.Years, TradeYear{
			Year:    e.Year,
			Exports: exports,
			Imports: imports,
			Balance: exports - imports,
		})
		report.TotalExports += exports
		report.TotalImports += imports
	}
	if len(report.Years) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCountry, country)
	}

	sort.Slice(report.Years, func(i, j int) bool {
		return report.Years[i].Year < report.Years[j].Year
	})
	report.OverallBalance = report.TotalExports - report.TotalImports
	return report, nil
}
