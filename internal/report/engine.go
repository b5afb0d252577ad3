// Package report reconciles the four ingredient datasets into per-ingredient
// cost metrics and derives aggregate summaries, insights, and alerts from
// them. The ingredient info dataset is authoritative: the output carries
// exactly one record per unique ingredient it names, in its row order, and
// ingredients appearing only in the stock, usage, or waste files are dropped.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/foretsdaniels/Paddys-Food-Tracker/internal/ingest"
)

// Compute validates the four datasets and reconciles them into a Report.
//
// Structural defects (empty dataset, missing columns) abort the run with the
// corresponding ingest error. Missing cross-dataset data never does: an
// ingredient absent from stock, usage, or waste simply contributes zero
// quantities. Non-numeric values coerce to zero and negative values are kept,
// both with a recorded warning. A name repeating within one dataset keeps the
// last occurrence.
func Compute(info, stock, usage, waste []ingest.Row) (*Report, error) {
	datasets := []struct {
		kind ingest.Dataset
		rows []ingest.Row
	}{
		{ingest.DatasetIngredientInfo, info},
		{ingest.DatasetStock, stock},
		{ingest.DatasetUsage, usage},
		{ingest.DatasetWaste, waste},
	}
	for _, d := range datasets {
		if err := ingest.Validate(d.rows, d.kind); err != nil {
			return nil, err
		}
	}

	var warnings []ingest.Warning
	received := quantityLookup(stock, ingest.DatasetStock, &warnings)
	used := quantityLookup(usage, ingest.DatasetUsage, &warnings)
	wasted := quantityLookup(waste, ingest.DatasetWaste, &warnings)

	metrics := make([]Metrics, 0, len(info))
	index := make(map[string]int, len(info))
	for _, row := range info {
		name := row[ingest.ColumnIngredient.Header()]
		unitCost := coerce(row[ingest.ColumnUnitCost.Header()], name, ingest.DatasetIngredientInfo, ingest.ColumnUnitCost, &warnings)

		if i, dup := index[name]; dup {
			// Last occurrence wins, keeping the first occurrence's position.
			warnings = append(warnings, duplicateWarning(ingest.DatasetIngredientInfo, name))
			metrics[i] = derive(name, unitCost, received[name], used[name], wasted[name])
			continue
		}
		index[name] = len(metrics)
		metrics = append(metrics, derive(name, unitCost, received[name], used[name], wasted[name]))
	}

	return &Report{
		Metrics:     metrics,
		Summary:     Summarize(metrics),
		Warnings:    warnings,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// derive fills every computed field of a record from its base values.
func derive(name string, unitCost, receivedQty, usedQty, wastedQty float64) Metrics {
	m := Metrics{
		Ingredient:  name,
		UnitCost:    unitCost,
		ReceivedQty: receivedQty,
		UsedQty:     usedQty,
		WastedQty:   wastedQty,
	}
	m.ExpectedUse = m.UsedQty + m.WastedQty
	m.Shrinkage = m.ReceivedQty - m.ExpectedUse
	m.UsedCost = m.UsedQty * m.UnitCost
	m.WasteCost = m.WastedQty * m.UnitCost
	m.ShrinkageCost = m.Shrinkage * m.UnitCost
	m.TotalCost = m.UsedCost + m.WasteCost + m.ShrinkageCost
	if m.ReceivedQty != 0 {
		m.WastePercent = m.WastedQty / m.ReceivedQty * 100
		m.ShrinkagePercent = m.Shrinkage / m.ReceivedQty * 100
	}
	return m
}

// quantityLookup builds the name→quantity map for one source dataset.
// Duplicate names keep the last value.
func quantityLookup(rows []ingest.Row, dataset ingest.Dataset, warnings *[]ingest.Warning) map[string]float64 {
	col := dataset.QuantityColumn()
	out := make(map[string]float64, len(rows))
	for _, row := range rows {
		name := row[ingest.ColumnIngredient.Header()]
		if _, dup := out[name]; dup {
			*warnings = append(*warnings, duplicateWarning(dataset, name))
		}
		out[name] = coerce(row[col.Header()], name, dataset, col, warnings)
	}
	return out
}

// coerce parses a raw field as a number. Blank fields are zero; anything
// unparsable is zero with a warning; negative values are kept with a warning.
func coerce(raw, name string, dataset ingest.Dataset, col ingest.Column, warnings *[]ingest.Warning) float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*warnings = append(*warnings, ingest.Warning{
			Dataset: dataset,
			Kind:    ingest.WarnNonNumericValue,
			Message: fmt.Sprintf("%s: non-numeric %s %q for %q treated as 0", dataset.Label(), col.Header(), s, name),
		})
		return 0
	}
	if v < 0 {
		*warnings = append(*warnings, ingest.Warning{
			Dataset: dataset,
			Kind:    ingest.WarnNegativeValue,
			Message: fmt.Sprintf("%s: negative %s %v for %q", dataset.Label(), col.Header(), v, name),
		})
	}
	return v
}

func duplicateWarning(dataset ingest.Dataset, name string) ingest.Warning {
	return ingest.Warning{
		Dataset: dataset,
		Kind:    ingest.WarnDuplicateIngredient,
		Message: fmt.Sprintf("%s: duplicate ingredient %q, last occurrence wins", dataset.Label(), name),
	}
}
