package ingest

import (
	"fmt"
	"strings"
)

// SchemaError means the upload is missing required columns. Columns carries
// the header set that was actually found, for diagnosis.
type SchemaError struct {
	Missing []string
	Columns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s (found: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Columns, ", "))
}

// DateParseError means no row in the upload had a parseable bill date. The
// source data must be fixed; no tables are produced.
type DateParseError struct {
	Column string
	Sample string
}

func (e *DateParseError) Error() string {
	if e.Sample != "" {
		return fmt.Sprintf("no parseable dates in column %s (e.g. %q)", e.Column, e.Sample)
	}
	return fmt.Sprintf("no parseable dates in column %s", e.Column)
}

// EmptyInputError means zero data rows survived ingestion.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "input file contains no data rows"
}
