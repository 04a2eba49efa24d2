package compare

import (
	"fmt"
	"sort"

	"github.com/evgray/milscope/internal/dataset"
)

// RevenueReport is one defense company's revenue series with its
// year-over-year growth analysis. Growth figures are percentages.
type RevenueReport struct {
	Company   string        `json:"company"`
	Country   string        `json:"country"`
	Series    []Point       `json:"series"`
	Growth    []GrowthPoint `json:"growth"`
	AvgGrowth float64       `json:"avg_growth"`
	MaxGrowth float64       `json:"max_growth"`
	MinGrowth float64       `json:"min_growth"`
}

// GrowthPoint is one year-over-year revenue change.
type GrowthPoint struct {
	Year   int     `json:"year"`
	Growth float64 `json:"growth_pct"`
}

// CompanyNames returns every company in the snapshot, sorted.
func CompanyNames(ds *dataset.Dataset) []string {
	seen := make(map[string]bool)
	var names []string
	for _, e := range ds.Revenue {
		if !seen[e.Company] {
			seen[e.Company] = true
			names = append(names, e.Company)
		}
	}
	sort.Strings(names)
	return names
}

// CompanyRevenue builds the revenue report for one company. Years without
// a published figure are skipped; growth needs at least two figures and a
// nonzero base year.
func CompanyRevenue(ds *dataset.Dataset, company string) (*RevenueReport, error) {
	report := &RevenueReport{Company: company}

	for _, e := range ds.Revenue {
		if e.Company != company {
			continue
		}
		report.Country = e.Country
		if e.Revenue == nil {
			continue
		}
		report.Series = append(report.Series, Point{Year: e.Year, Value: *e.Revenue})
	}
	if report.Country == "" && len(report.Series) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompany, company)
	}

	sort.Slice(report.Series, func(i, j int) bool {
		return report.Series[i].Year < report.Series[j].Year
	})

	for i := 1; i < len(report.Series); i++ {
		prev := report.Series[i-1].Value
		if prev == 0 {
			continue
		}
		g := (report.Series[i].Value - prev) / prev * 100
		report.Growth = append(report.Growth, GrowthPoint{
			Year:   report.Series[i].Year,
			Growth: g,
		})
	}

	if len(report.Growth) > 0 {
		report.MaxGrowth = report.Growth[0].Growth
		report.MinGrowth = report.Growth[0].Growth
		var sum float64
		for _, g := range report.Growth {
			sum += g.Growth
			if g.Growth > report.MaxGrowth {
				report.MaxGrowth = g.Growth
			}
			if g.Growth < report.MinGrowth {
				report.MinGrowth = g.Growth
			}
		}
		report.AvgGrowth = sum / float64(len(report.Growth))
	}

	return report, nil
}
