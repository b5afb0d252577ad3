package ingest

// WarningKind classifies a non-fatal data quality issue found while parsing
// or reconciling a dataset. Warnings are advisory and never abort processing.
type WarningKind string

const (
	WarnFieldCountMismatch  WarningKind = "field_count_mismatch"
	WarnNonNumericValue     WarningKind = "non_numeric_value"
	WarnNegativeValue       WarningKind = "negative_value"
	WarnDuplicateIngredient WarningKind = "duplicate_ingredient"
)

// Warning is a single data quality finding tied to the dataset it came from.
type Warning struct {
	Dataset Dataset     `json:"dataset"`
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}
