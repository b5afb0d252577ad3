package report

import (
	"fmt"
	"math"
)

// Summarize reduces a metrics sequence to presentation totals. An empty
// sequence yields an all-zero summary.
func Summarize(metrics []Metrics) Summary {
	s := Summary{TotalIngredients: len(metrics)}
	if len(metrics) == 0 {
		return s
	}

	var wastePct, shrinkPct float64
	for _, m := range metrics {
		s.TotalCost += m.TotalCost
		s.TotalWasteCost += m.WasteCost
		s.TotalShrinkageCost += m.ShrinkageCost
		wastePct += m.WastePercent
		shrinkPct += m.ShrinkagePercent
	}
	n := float64(len(metrics))

	s.TotalCost = round2(s.TotalCost)
	s.TotalWasteCost = round2(s.TotalWasteCost)
	s.TotalShrinkageCost = round2(s.TotalShrinkageCost)
	s.AvgWastePercent = round2(wastePct / n)
	s.AvgShrinkagePercent = round2(shrinkPct / n)
	return s
}

// Insights evaluates the threshold rules against a metrics sequence and
// returns the triggered advisory messages. Rules are independent: every
// triggered rule contributes a message.
func Insights(metrics []Metrics, t Thresholds) []string {
	t = t.Normalize()
	var (
		highWaste     int
		highShrinkage int
		missingStock  int

		totalCost, wasteCost, shrinkageCost float64
	)
	for _, m := range metrics {
		if m.WastePercent > t.HighWastePercent {
			highWaste++
		}
		if m.ShrinkageCost > t.HighShrinkageCost {
			highShrinkage++
		}
		if m.ReceivedQty == 0 {
			missingStock++
		}
		totalCost += m.TotalCost
		wasteCost += m.WasteCost
		shrinkageCost += m.ShrinkageCost
	}

	var out []string
	if highWaste > 0 {
		out = append(out, fmt.Sprintf("%d ingredients have waste above %.1f%% of received stock", highWaste, t.HighWastePercent))
	}
	if highShrinkage > 0 {
		out = append(out, fmt.Sprintf("%d ingredients have shrinkage cost above $%.2f", highShrinkage, t.HighShrinkageCost))
	}
	if missingStock > 0 {
		out = append(out, fmt.Sprintf("%d ingredients have no recorded stock but appear in usage or waste", missingStock))
	}
	if totalCost > 0 {
		if pct := wasteCost / totalCost * 100; pct > t.AggregateSharePercent {
			out = append(out, fmt.Sprintf("waste accounts for %.1f%% of total cost; review prep and storage practices", pct))
		}
		if pct := shrinkageCost / totalCost * 100; pct > t.AggregateSharePercent {
			out = append(out, fmt.Sprintf("shrinkage accounts for %.1f%% of total cost; review inventory controls", pct))
		}
	}
	return out
}

// Alerts raises per-ingredient advisories for the worst offenders: critical
// shrinkage, high waste rate, and usage or waste recorded against zero stock.
func Alerts(metrics []Metrics, t Thresholds) []Alert {
	t = t.Normalize()
	var out []Alert
	for _, m := range metrics {
		if m.ShrinkageCost > t.CriticalShrinkageCost {
			out = append(out, Alert{
				Type:       "high_shrinkage",
				Severity:   SeverityCritical,
				Ingredient: m.Ingredient,
				Message:    fmt.Sprintf("critical shrinkage: %s has $%.2f in missing inventory", m.Ingredient, m.ShrinkageCost),
				Value:      m.ShrinkageCost,
			})
		}
	}
	for _, m := range metrics {
		if m.WastePercent > t.HighWastePercent {
			out = append(out, Alert{
				Type:       "high_waste",
				Severity:   SeverityWarning,
				Ingredient: m.Ingredient,
				Message:    fmt.Sprintf("high waste: %s has a %.1f%% waste rate", m.Ingredient, m.WastePercent),
				Value:      m.WastePercent,
			})
		}
	}
	for _, m := range metrics {
		if m.ReceivedQty == 0 && (m.UsedQty > 0 || m.WastedQty > 0) {
			out = append(out, Alert{
				Type:       "missing_stock",
				Severity:   SeverityWarning,
				Ingredient: m.Ingredient,
				Message:    fmt.Sprintf("no stock received for %s but usage or waste was recorded", m.Ingredient),
			})
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
