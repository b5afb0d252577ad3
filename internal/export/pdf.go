package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/report"
)

var pdfColumns = []struct {
	title string
	width float64
}{
	{"Ingredient", 42},
	{"Unit Cost", 22},
	{"Received", 20},
	{"Used", 20},
	{"Wasted", 20},
	{"Shrinkage", 24},
	{"Used Cost", 24},
	{"Waste Cost", 24},
	{"Shrink Cost", 26},
	{"Total Cost", 24},
	{"Waste %", 20},
}

// PDF renders the report as a landscape table with the summary block at the
// end. Headers repeat on every page.
func PDF(rep *report.Report) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.SetAutoPageBreak(true, 16)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, "Ingredient Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 6, "Generated "+rep.GeneratedAt.Format(time.RFC1123), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(3)

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range pdfColumns {
			pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	writeHeader()

	_, pageHeight := pdf.GetPageSize()
	for _, m := range rep.Metrics {
		if pdf.GetY() > pageHeight-24 {
			pdf.AddPage()
			writeHeader()
		}
		cells := []struct {
			text  string
			align string
		}{
			{m.Ingredient, "L"},
			{money(m.UnitCost), "R"},
			{qty(m.ReceivedQty), "R"},
			{qty(m.UsedQty), "R"},
			{qty(m.WastedQty), "R"},
			{qty(m.Shrinkage), "R"},
			{money(m.UsedCost), "R"},
			{money(m.WasteCost), "R"},
			{money(m.ShrinkageCost), "R"},
			{money(m.TotalCost), "R"},
			{percent(m.WastePercent), "R"},
		}
		for i, cell := range cells {
			pdf.CellFormat(pdfColumns[i].width, 6, cell.text, "1", 0, cell.align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(5)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 7, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range []string{
		fmt.Sprintf("Ingredients tracked: %d", rep.Summary.TotalIngredients),
		fmt.Sprintf("Total cost: %s", money(rep.Summary.TotalCost)),
		fmt.Sprintf("Total waste cost: %s", money(rep.Summary.TotalWasteCost)),
		fmt.Sprintf("Total shrinkage cost: %s", money(rep.Summary.TotalShrinkageCost)),
		fmt.Sprintf("Average waste: %s", percent(rep.Summary.AvgWastePercent)),
		fmt.Sprintf("Average shrinkage: %s", percent(rep.Summary.AvgShrinkagePercent)),
	} {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serialize pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func qty(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
