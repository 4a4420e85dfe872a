package ingest

import (
	"fmt"
	"strings"
)

// ClassificationError reports that the uploaded tables could not be told apart.
// It is fatal for the run; no relations are produced.
type ClassificationError struct {
	Tables  []string
	Matched []string
	Reason  string
}

func (e *ClassificationError) Error() string {
	msg := "cannot classify uploaded tables: " + e.Reason
	if len(e.Tables) > 0 {
		msg += fmt.Sprintf(" (tables: %s)", strings.Join(e.Tables, ", "))
	}
	return msg
}

// SchemaError reports that a required column is missing from a table.
type SchemaError struct {
	Table  string
	Column string
}

func (e *SchemaError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("required column %q is missing", e.Column)
	}
	return fmt.Sprintf("required column %q is missing from %s", e.Column, e.Table)
}
