package ingest

import (
	"fmt"
	"strings"
)

// EmptyInputError reports raw CSV text with no header or no data rows.
type EmptyInputError struct {
	Dataset Dataset
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s is empty: expected a header row and at least one data row", e.Dataset.Label())
}

// EmptyDatasetError reports a parsed dataset that contains no rows.
type EmptyDatasetError struct {
	Dataset Dataset
}

func (e *EmptyDatasetError) Error() string {
	return fmt.Sprintf("%s is empty: please provide a CSV file with data", e.Dataset.Label())
}

// MissingColumnsError reports required columns absent from a dataset.
type MissingColumnsError struct {
	Dataset Dataset
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s is missing required columns: %s", e.Dataset.Label(), strings.Join(e.Missing, ", "))
}
