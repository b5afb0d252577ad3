package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMetrics() []Metrics {
	return []Metrics{
		derive("Tomatoes", 2.50, 150, 120, 8), // shrinkage cost 55
		derive("Onions", 1.20, 0, 5, 0),       // missing stock
		derive("Basil", 4.00, 10, 6, 3),       // waste 30%
		derive("Flour", 0.80, 50, 48, 2),      // shrinkage 0, waste 4%
	}
}

func TestFilterAll(t *testing.T) {
	metrics := sampleMetrics()

	out, err := Filter(metrics, FilterAll, DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, metrics, out)

	// Empty name behaves as "all".
	out, err = Filter(metrics, "", DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, metrics, out)
}

func TestFilterMissingStock(t *testing.T) {
	out, err := Filter(sampleMetrics(), FilterMissingStock, DefaultThresholds())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Onions", out[0].Ingredient)
	for _, m := range out {
		assert.Zero(t, m.ReceivedQty)
	}
}

func TestFilterHighWaste(t *testing.T) {
	out, err := Filter(sampleMetrics(), FilterHighWaste, DefaultThresholds())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Basil", out[0].Ingredient)
}

func TestFilterHighShrinkage(t *testing.T) {
	out, err := Filter(sampleMetrics(), FilterHighShrinkage, DefaultThresholds())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Tomatoes", out[0].Ingredient)
}

func TestFilterWellManaged(t *testing.T) {
	out, err := Filter(sampleMetrics(), FilterWellManaged, DefaultThresholds())
	require.NoError(t, err)
	// Onions qualifies too: negative shrinkage cost and zero waste percent.
	require.Len(t, out, 2)
	assert.Equal(t, "Onions", out[0].Ingredient)
	assert.Equal(t, "Flour", out[1].Ingredient)
}

func TestFilterNegativeShrinkage(t *testing.T) {
	out, err := Filter(sampleMetrics(), FilterNegativeShrinkage, DefaultThresholds())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Onions", out[0].Ingredient)
}

func TestFilterPreservesOrderAndInput(t *testing.T) {
	metrics := sampleMetrics()
	before := make([]Metrics, len(metrics))
	copy(before, metrics)

	out, err := Filter(metrics, FilterHighShrinkage, DefaultThresholds())
	require.NoError(t, err)

	assert.Equal(t, before, metrics, "input must not be mutated")
	// Relative order of survivors matches the input order.
	last := -1
	for _, m := range out {
		for i, orig := range metrics {
			if orig.Ingredient == m.Ingredient {
				assert.Greater(t, i, last)
				last = i
			}
		}
	}
}

func TestFilterUnknownName(t *testing.T) {
	_, err := Filter(sampleMetrics(), "bogus", DefaultThresholds())
	var filterErr *InvalidFilterError
	require.ErrorAs(t, err, &filterErr)
	assert.Equal(t, "bogus", filterErr.Name)
}

func TestSortTotalCostDescending(t *testing.T) {
	out, err := Sort(sampleMetrics(), "total_cost", "desc")
	require.NoError(t, err)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].TotalCost, out[i].TotalCost)
	}
}

func TestSortIngredientCaseInsensitive(t *testing.T) {
	metrics := []Metrics{
		derive("basil", 1, 0, 0, 0),
		derive("Apples", 1, 0, 0, 0),
		derive("CARROTS", 1, 0, 0, 0),
	}

	out, err := Sort(metrics, SortFieldIngredient, "asc")
	require.NoError(t, err)
	assert.Equal(t, "Apples", out[0].Ingredient)
	assert.Equal(t, "basil", out[1].Ingredient)
	assert.Equal(t, "CARROTS", out[2].Ingredient)
}

func TestSortStableOnTies(t *testing.T) {
	metrics := []Metrics{
		derive("First", 1, 10, 5, 0),
		derive("Second", 1, 10, 5, 0),
		derive("Third", 1, 10, 5, 0),
	}

	out, err := Sort(metrics, "total_cost", "desc")
	require.NoError(t, err)
	assert.Equal(t, "First", out[0].Ingredient)
	assert.Equal(t, "Second", out[1].Ingredient)
	assert.Equal(t, "Third", out[2].Ingredient)
}

func TestSortDoesNotMutateInput(t *testing.T) {
	metrics := sampleMetrics()
	before := make([]Metrics, len(metrics))
	copy(before, metrics)

	_, err := Sort(metrics, "waste_cost", "asc")
	require.NoError(t, err)
	assert.Equal(t, before, metrics)
}

func TestSortUnknownField(t *testing.T) {
	_, err := Sort(sampleMetrics(), "velocity", "desc")
	var keyErr *InvalidSortKeyError
	require.ErrorAs(t, err, &keyErr)
	assert.Equal(t, "velocity", keyErr.Field)
}
