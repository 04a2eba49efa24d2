// Package export writes the ranking report as an xlsx workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/evgray/milscope/pkg/power"
)

const (
	strengthSheet   = "Current Strength"
	projectionSheet = "Projection"
	growthSheet     = "Growth Detail"
)

// WriteReport writes current and projected rankings to an xlsx file.
func WriteReport(path string, current []power.StrengthScore, projected []power.ProjectionRecord, targetYear int) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", strengthSheet)

	writeHeaders(f, strengthSheet, []string{"Rank", "Country", "Strength Score", "Power Index"})
	for i, s := range current {
		row := i + 2
		f.SetCellValue(strengthSheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(strengthSheet, fmt.Sprintf("B%d", row), s.Country)
		f.SetCellValue(strengthSheet, fmt.Sprintf("C%d", row), s.Score)
		f.SetCellValue(strengthSheet, fmt.Sprintf("D%d", row), s.PwrIndex)
	}

	f.NewSheet(projectionSheet)
	writeHeaders(f, projectionSheet, []string{"Rank", "Country",
		fmt.Sprintf("Projection Score (%d)", targetYear),
		"Strength Score", "Growth (normalized)", "Power Index"})
	for i, p := range projected {
		row := i + 2
		f.SetCellValue(projectionSheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(projectionSheet, fmt.Sprintf("B%d", row), p.Country)
		f.SetCellValue(projectionSheet, fmt.Sprintf("C%d", row), p.ProjectionScore)
		f.SetCellValue(projectionSheet, fmt.Sprintf("D%d", row), p.StrengthScore)
		f.SetCellValue(projectionSheet, fmt.Sprintf("E%d", row), p.GrowthNormalized)
		f.SetCellValue(projectionSheet, fmt.Sprintf("F%d", row), p.PwrIndex)
	}

	f.NewSheet(growthSheet)
	writeHeaders(f, growthSheet, []string{"Country", "Growth Score",
		"Growth (normalized)", "Valid Years", "Status"})
	for i, p := range projected {
		row := i + 2
		f.SetCellValue(growthSheet, fmt.Sprintf("A%d", row), p.Country)
		f.SetCellValue(growthSheet, fmt.Sprintf("B%d", row), p.GrowthScore)
		f.SetCellValue(growthSheet, fmt.Sprintf("C%d", row), p.GrowthNormalized)
		f.SetCellValue(growthSheet, fmt.Sprintf("D%d", row), p.ValidYears)
		f.SetCellValue(growthSheet, fmt.Sprintf("E%d", row), string(p.GrowthReason))
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report %s: %w", path, err)
	}
	return nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetColWidth(sheet, cell, cell, 22)
	}
}
