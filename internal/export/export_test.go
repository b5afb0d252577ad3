package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/report"
)

func sampleReport() *report.Report {
	return &report.Report{
		Metrics: []report.Metrics{
			{
				Ingredient: "Tomatoes", UnitCost: 2.5, ReceivedQty: 150,
				UsedQty: 120, WastedQty: 8, ExpectedUse: 128, Shrinkage: 22,
				UsedCost: 300, WasteCost: 20, ShrinkageCost: 55, TotalCost: 375,
				WastePercent: 5.33, ShrinkagePercent: 14.67,
			},
			{
				Ingredient: "Onions", UnitCost: 1.2, ReceivedQty: 90,
				UsedQty: 70, WastedQty: 20, ExpectedUse: 90,
				UsedCost: 84, WasteCost: 24, TotalCost: 108,
				WastePercent: 22.22,
			},
		},
		Summary: report.Summary{
			TotalIngredients:    2,
			TotalCost:           483,
			TotalWasteCost:      44,
			TotalShrinkageCost:  55,
			AvgWastePercent:     13.78,
			AvgShrinkagePercent: 7.34,
		},
		GeneratedAt: time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC),
	}
}

func TestExcelRoundTrip(t *testing.T) {
	data, err := Excel(sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Ingredient Report", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Ingredient", got)

	got, err = f.GetCellValue("Ingredient Report", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Tomatoes", got)

	got, err = f.GetCellValue("Ingredient Report", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Onions", got)

	// Summary block starts one blank row below the table.
	got, err = f.GetCellValue("Ingredient Report", "A5")
	require.NoError(t, err)
	assert.Equal(t, "Total Ingredients", got)
}

func TestExcelEmptyReport(t *testing.T) {
	rep := &report.Report{GeneratedAt: time.Now().UTC()}
	data, err := Excel(rep)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Ingredient Report", "A3")
	require.NoError(t, err)
	assert.Equal(t, "Total Ingredients", got)
}

func TestPDFOutput(t *testing.T) {
	data, err := PDF(sampleReport())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should start with a PDF header")
}

func TestPDFManyRows(t *testing.T) {
	rep := sampleReport()
	for i := 0; i < 200; i++ {
		rep.Metrics = append(rep.Metrics, report.Metrics{Ingredient: "Filler", UnitCost: 1})
	}
	data, err := PDF(rep)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
