// Package export renders computed reports into downloadable documents.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/report"
)

const excelSheet = "Ingredient Report"

var excelHeaders = []string{
	"Ingredient", "Unit Cost", "Received Qty", "Used Qty", "Wasted Qty",
	"Expected Use", "Shrinkage", "Used Cost", "Waste Cost", "Shrinkage Cost",
	"Total Cost", "Waste %", "Shrinkage %",
}

// Excel renders the report as an xlsx workbook with one data sheet and a
// summary block below the table.
func Excel(rep *report.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", excelSheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDDDDD"}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	moneyFmt := "$#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return nil, fmt.Errorf("money style: %w", err)
	}
	pctFmt := "0.00\"%\""
	pctStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &pctFmt})
	if err != nil {
		return nil, fmt.Errorf("percent style: %w", err)
	}

	for i, h := range excelHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(excelSheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(excelHeaders), 1)
	if err := f.SetCellStyle(excelSheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, m := range rep.Metrics {
		rowNum := i + 2
		values := []interface{}{
			m.Ingredient, m.UnitCost, m.ReceivedQty, m.UsedQty, m.WastedQty,
			m.ExpectedUse, m.Shrinkage, m.UsedCost, m.WasteCost, m.ShrinkageCost,
			m.TotalCost, m.WastePercent, m.ShrinkagePercent,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := f.SetCellValue(excelSheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row %d: %w", rowNum, err)
			}
		}
	}

	lastRow := len(rep.Metrics) + 1
	for _, span := range []struct {
		from, to int
		style    int
	}{
		{2, 2, moneyStyle},   // unit cost
		{8, 11, moneyStyle},  // used/waste/shrinkage/total cost
		{12, 13, pctStyle},   // waste/shrinkage percent
	} {
		start, _ := excelize.CoordinatesToCellName(span.from, 2)
		end, _ := excelize.CoordinatesToCellName(span.to, lastRow)
		if err := f.SetCellStyle(excelSheet, start, end, span.style); err != nil {
			return nil, fmt.Errorf("style columns: %w", err)
		}
	}

	summaryRow := lastRow + 2
	summary := []struct {
		label string
		value interface{}
		style int
	}{
		{"Total Ingredients", rep.Summary.TotalIngredients, 0},
		{"Total Cost", rep.Summary.TotalCost, moneyStyle},
		{"Total Waste Cost", rep.Summary.TotalWasteCost, moneyStyle},
		{"Total Shrinkage Cost", rep.Summary.TotalShrinkageCost, moneyStyle},
		{"Avg Waste %", rep.Summary.AvgWastePercent, pctStyle},
		{"Avg Shrinkage %", rep.Summary.AvgShrinkagePercent, pctStyle},
	}
	for i, s := range summary {
		labelCell, _ := excelize.CoordinatesToCellName(1, summaryRow+i)
		valueCell, _ := excelize.CoordinatesToCellName(2, summaryRow+i)
		if err := f.SetCellValue(excelSheet, labelCell, s.label); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
		if err := f.SetCellValue(excelSheet, valueCell, s.value); err != nil {
			return nil, fmt.Errorf("write summary: %w", err)
		}
		if err := f.SetCellStyle(excelSheet, labelCell, labelCell, headerStyle); err != nil {
			return nil, fmt.Errorf("style summary: %w", err)
		}
		if s.style != 0 {
			if err := f.SetCellStyle(excelSheet, valueCell, valueCell, s.style); err != nil {
				return nil, fmt.Errorf("style summary: %w", err)
			}
		}
	}

	stampCell, _ := excelize.CoordinatesToCellName(1, summaryRow+len(summary)+1)
	stamp := "Generated " + rep.GeneratedAt.Format(time.RFC3339)
	if err := f.SetCellValue(excelSheet, stampCell, stamp); err != nil {
		return nil, fmt.Errorf("write timestamp: %w", err)
	}

	if err := f.SetColWidth(excelSheet, "A", "A", 24); err != nil {
		return nil, fmt.Errorf("column width: %w", err)
	}
	if err := f.SetColWidth(excelSheet, "B", "M", 14); err != nil {
		return nil, fmt.Errorf("column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
