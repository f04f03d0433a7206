package ingest

import (
	"fmt"
	"strings"
)

// Cell is a single labeled value from a source row. Labels are kept as-is,
// so duplicates and blanks survive ingestion.
type Cell struct {
	Label string
	Value string
}

// RawRow is one source row re-keyed against the detected header. Cells keep
// the source column order; a RawRow is never mutated after ingestion.
type RawRow struct {
	Index int
	Cells []Cell
}

// IsEmpty reports whether every cell value is blank.
func (r RawRow) IsEmpty() bool {
	for _, c := range r.Cells {
		if strings.TrimSpace(c.Value) != "" {
			return false
		}
	}
	return true
}

// Render flattens the row into a single "label: value" line. The result is
// what enrichment strategies see (prompt input) and what PartRecord keeps
// as the raw-input echo for review.
func (r RawRow) Render() string {
	parts := make([]string, 0, len(r.Cells))
	for _, c := range r.Cells {
		value := strings.TrimSpace(c.Value)
		if value == "" {
			continue
		}
		label := strings.TrimSpace(c.Label)
		if label == "" {
			parts = append(parts, value)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", label, value))
	}
	return strings.Join(parts, " | ")
}

// Values returns the cell values in source column order.
func (r RawRow) Values() []string {
	values := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		values[i] = c.Value
	}
	return values
}
