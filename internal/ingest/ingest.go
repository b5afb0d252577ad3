// Package ingest parses and validates the raw CSV inputs of a report run.
// It returns rows as header→value mappings; numeric coercion is left
// to the reconciliation engine.
package ingest

import (
	"fmt"
	"strings"
)

// Row maps CSV header text to the raw field value for one data line.
type Row map[string]string

// Parse splits raw CSV text for the given dataset into rows keyed by header.
//
// The format is deliberately minimal to match the files the tracker accepts:
// a single comma delimiter, no quoting or escaping. Header names are trimmed;
// values are kept verbatim. Input with no header or no data rows fails with
// *EmptyInputError. Data lines whose field count disagrees with the header
// are skipped with a recorded warning.
func Parse(raw string, dataset Dataset) ([]Row, []Warning, error) {
	lines := splitLines(raw)
	if len(lines) < 2 {
		return nil, nil, &EmptyInputError{Dataset: dataset}
	}

	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	rows := make([]Row, 0, len(lines)-1)
	var warnings []Warning
	for n, line := range lines[1:] {
		fields := strings.Split(line, ",")
		if len(fields) != len(headers) {
			warnings = append(warnings, Warning{
				Dataset: dataset,
				Kind:    WarnFieldCountMismatch,
				Message: fmt.Sprintf("%s: row %d has %d fields, expected %d; row skipped", dataset.Label(), n+1, len(fields), len(headers)),
			})
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			row[h] = fields[i]
		}
		rows = append(rows, row)
	}
	return rows, warnings, nil
}

// Validate confirms a parsed dataset is non-empty and carries every required
// column. It returns *EmptyDatasetError or *MissingColumnsError; value types
// are not checked here.
func Validate(rows []Row, dataset Dataset) error {
	if len(rows) == 0 {
		return &EmptyDatasetError{Dataset: dataset}
	}
	var missing []string
	for _, header := range dataset.RequiredHeaders() {
		if _, ok := rows[0][header]; !ok {
			missing = append(missing, header)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Dataset: dataset, Missing: missing}
	}
	return nil
}

// splitLines splits on newlines, tolerating CRLF endings and dropping blank
// lines so trailing newlines do not produce ghost rows.
func splitLines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
