package report

import (
	"time"

	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/ingest"
)

// Metrics is the fully reconciled record for one ingredient. Quantities
// default to zero when the ingredient is absent from a source dataset; the
// derived fields follow from the quantities exactly.
type Metrics struct {
	Ingredient       string  `json:"ingredient"`
	UnitCost         float64 `json:"unit_cost"`
	ReceivedQty      float64 `json:"received_qty"`
	UsedQty          float64 `json:"used_qty"`
	WastedQty        float64 `json:"wasted_qty"`
	ExpectedUse      float64 `json:"expected_use"`
	Shrinkage        float64 `json:"shrinkage"`
	UsedCost         float64 `json:"used_cost"`
	WasteCost        float64 `json:"waste_cost"`
	ShrinkageCost    float64 `json:"shrinkage_cost"`
	TotalCost        float64 `json:"total_cost"`
	WastePercent     float64 `json:"waste_percent"`
	ShrinkagePercent float64 `json:"shrinkage_percent"`
}

// Summary aggregates a metrics sequence for presentation. All values are
// rounded to two decimal places.
type Summary struct {
	TotalIngredients    int     `json:"total_ingredients"`
	TotalCost           float64 `json:"total_cost"`
	TotalWasteCost      float64 `json:"total_waste_cost"`
	TotalShrinkageCost  float64 `json:"total_shrinkage_cost"`
	AvgWastePercent     float64 `json:"avg_waste_percent"`
	AvgShrinkagePercent float64 `json:"avg_shrinkage_percent"`
}

// Report is the result of one report run: the reconciled per-ingredient
// records in ingredient-info order, the aggregate summary, and any data
// quality warnings collected along the way.
type Report struct {
	Metrics     []Metrics        `json:"metrics"`
	Summary     Summary          `json:"summary"`
	Warnings    []ingest.Warning `json:"warnings,omitempty"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// AlertSeverity ranks an alert.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
)

// Alert is a per-ingredient advisory raised by a threshold rule.
type Alert struct {
	Type       string        `json:"type"`
	Severity   AlertSeverity `json:"severity"`
	Ingredient string        `json:"ingredient"`
	Message    string        `json:"message"`
	Value      float64       `json:"value"`
}
