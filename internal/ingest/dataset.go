package ingest

// Dataset identifies one of the four CSV sources fed into a report run.
type Dataset string

const (
	DatasetIngredientInfo Dataset = "ingredient_info"
	DatasetStock          Dataset = "input_stock"
	DatasetUsage          Dataset = "usage"
	DatasetWaste          Dataset = "waste"
)

// Column identifies a recognized field role, decoupled from the header text
// that carries it on the wire.
type Column string

const (
	ColumnIngredient  Column = "ingredient"
	ColumnUnitCost    Column = "unit_cost"
	ColumnReceivedQty Column = "received_qty"
	ColumnUsedQty     Column = "used_qty"
	ColumnWastedQty   Column = "wasted_qty"
)

// headerByColumn is the single mapping from internal column roles to the
// external CSV header text.
var headerByColumn = map[Column]string{
	ColumnIngredient:  "Ingredient",
	ColumnUnitCost:    "Unit Cost",
	ColumnReceivedQty: "Received Qty",
	ColumnUsedQty:     "Used Qty",
	ColumnWastedQty:   "Wasted Qty",
}

var requiredColumns = map[Dataset][]Column{
	DatasetIngredientInfo: {ColumnIngredient, ColumnUnitCost},
	DatasetStock:          {ColumnIngredient, ColumnReceivedQty},
	DatasetUsage:          {ColumnIngredient, ColumnUsedQty},
	DatasetWaste:          {ColumnIngredient, ColumnWastedQty},
}

var datasetLabels = map[Dataset]string{
	DatasetIngredientInfo: "Ingredient Info CSV",
	DatasetStock:          "Stock CSV",
	DatasetUsage:          "Usage CSV",
	DatasetWaste:          "Waste CSV",
}

// Datasets lists all dataset kinds in upload order.
func Datasets() []Dataset {
	return []Dataset{DatasetIngredientInfo, DatasetStock, DatasetUsage, DatasetWaste}
}

// Header returns the CSV header text for the column role.
func (c Column) Header() string {
	return headerByColumn[c]
}

// QuantityColumn returns the numeric column a dataset contributes to the
// reconciled record. The ingredient info dataset contributes the unit cost.
func (d Dataset) QuantityColumn() Column {
	switch d {
	case DatasetStock:
		return ColumnReceivedQty
	case DatasetUsage:
		return ColumnUsedQty
	case DatasetWaste:
		return ColumnWastedQty
	default:
		return ColumnUnitCost
	}
}

// RequiredColumns returns the column roles a dataset must carry.
func (d Dataset) RequiredColumns() []Column {
	cols := requiredColumns[d]
	out := make([]Column, len(cols))
	copy(out, cols)
	return out
}

// RequiredHeaders returns the CSV header names a dataset must carry.
func (d Dataset) RequiredHeaders() []string {
	cols := requiredColumns[d]
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = c.Header()
	}
	return out
}

// Label returns the human-readable dataset name used in error messages.
func (d Dataset) Label() string {
	if l, ok := datasetLabels[d]; ok {
		return l
	}
	return string(d)
}
