package ingest

import (
	"errors"
	"strings"
)

// ErrSourceUnreadable is returned when a source cannot be parsed as tabular
// data at all. It is the only batch-fatal ingestion error; anything that
// parses yields rows, however messy.
var ErrSourceUnreadable = errors.New("source unreadable")

// headerKeywords mark a row as the real header. Distributor pricebooks
// routinely carry logos, contact blocks and blank lines above the header,
// so the first row can never be trusted blindly.
var headerKeywords = []string{"part", "model", "item", "description", "price", "product", "#"}

// LocateHeader scans rows top to bottom and returns the index of the first
// row whose concatenated lower-cased text contains any header keyword.
// When nothing matches it returns 0: the first row is treated as the header
// rather than failing the file.
func LocateHeader(rows [][]string) int {
	for i, row := range rows {
		joined := strings.ToLower(strings.Join(row, " "))
		for _, kw := range headerKeywords {
			if strings.Contains(joined, kw) {
				return i
			}
		}
	}
	return 0
}

// reframe re-keys the data rows below the header against the header labels
// and drops fully empty rows. Row indexes count data rows from zero, in
// source order.
func reframe(rows [][]string, headerIdx int) []RawRow {
	if headerIdx >= len(rows) {
		return nil
	}
	header := rows[headerIdx]

	out := make([]RawRow, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		cells := make([]Cell, 0, len(row))
		for j, value := range row {
			label := ""
			if j < len(header) {
				label = strings.TrimSpace(header[j])
			}
			cells = append(cells, Cell{Label: label, Value: strings.TrimSpace(value)})
		}
		raw := RawRow{Index: len(out), Cells: cells}
		if raw.IsEmpty() {
			continue
		}
		out = append(out, raw)
	}
	return out
}
