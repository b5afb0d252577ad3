package report

import (
	"fmt"
	"sort"
	"strings"
)

// InvalidFilterError reports a filter name outside the recognized set.
type InvalidFilterError struct {
	Name string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("unknown filter %q", e.Name)
}

// InvalidSortKeyError reports a sort field outside the recognized set.
type InvalidSortKeyError struct {
	Field string
}

func (e *InvalidSortKeyError) Error() string {
	return fmt.Sprintf("unknown sort field %q", e.Field)
}

// FilterAll matches every record. The remaining names select by the
// thresholds in t.
const (
	FilterAll               = "all"
	FilterHighWaste         = "high_waste"
	FilterHighShrinkage     = "high_shrinkage"
	FilterMissingStock      = "missing_stock"
	FilterWellManaged       = "well_managed"
	FilterNegativeShrinkage = "negative_shrinkage"
)

// Filter returns the records matching the named predicate, preserving their
// relative order. The input is never mutated.
func Filter(metrics []Metrics, name string, t Thresholds) ([]Metrics, error) {
	t = t.Normalize()
	var pred func(Metrics) bool
	switch name {
	case FilterAll, "":
		pred = func(Metrics) bool { return true }
	case FilterHighWaste:
		pred = func(m Metrics) bool { return m.WastePercent > t.HighWastePercent }
	case FilterHighShrinkage:
		pred = func(m Metrics) bool { return m.ShrinkageCost > t.HighShrinkageCost }
	case FilterMissingStock:
		pred = func(m Metrics) bool { return m.ReceivedQty == 0 }
	case FilterWellManaged:
		pred = func(m Metrics) bool {
			return m.ShrinkageCost <= 0 && m.WastePercent <= t.WellManagedWastePercent
		}
	case FilterNegativeShrinkage:
		pred = func(m Metrics) bool { return m.Shrinkage < 0 }
	default:
		return nil, &InvalidFilterError{Name: name}
	}

	out := make([]Metrics, 0, len(metrics))
	for _, m := range metrics {
		if pred(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

// numericSortKeys maps snake_case sort fields to their record value.
var numericSortKeys = map[string]func(Metrics) float64{
	"unit_cost":         func(m Metrics) float64 { return m.UnitCost },
	"received_qty":      func(m Metrics) float64 { return m.ReceivedQty },
	"used_qty":          func(m Metrics) float64 { return m.UsedQty },
	"wasted_qty":        func(m Metrics) float64 { return m.WastedQty },
	"expected_use":      func(m Metrics) float64 { return m.ExpectedUse },
	"shrinkage":         func(m Metrics) float64 { return m.Shrinkage },
	"used_cost":         func(m Metrics) float64 { return m.UsedCost },
	"waste_cost":        func(m Metrics) float64 { return m.WasteCost },
	"shrinkage_cost":    func(m Metrics) float64 { return m.ShrinkageCost },
	"total_cost":        func(m Metrics) float64 { return m.TotalCost },
	"waste_percent":     func(m Metrics) float64 { return m.WastePercent },
	"shrinkage_percent": func(m Metrics) float64 { return m.ShrinkagePercent },
}

// SortFieldIngredient sorts by name, compared case-insensitively.
const SortFieldIngredient = "ingredient"

// Sort returns a copy of metrics ordered by the named field. Order is "asc"
// for ascending; anything else sorts descending. The sort is stable, so
// records with equal keys keep their relative order.
func Sort(metrics []Metrics, field, order string) ([]Metrics, error) {
	ascending := order == "asc"

	out := make([]Metrics, len(metrics))
	copy(out, metrics)

	if field == SortFieldIngredient {
		sort.SliceStable(out, func(i, j int) bool {
			a := strings.ToLower(out[i].Ingredient)
			b := strings.ToLower(out[j].Ingredient)
			if ascending {
				return a < b
			}
			return a > b
		})
		return out, nil
	}

	key, ok := numericSortKeys[field]
	if !ok {
		return nil, &InvalidSortKeyError{Field: field}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if ascending {
			return key(out[i]) < key(out[j])
		}
		return key(out[i]) > key(out[j])
	})
	return out, nil
}
