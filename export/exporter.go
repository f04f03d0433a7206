// Package export serializes batch results: accepted rows as a delimited
// file for import, needs-review records as a workbook for humans, and the
// full record set as JSON for audit.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Dl0057754/Wex-PB-Tool/enrichment"
	"github.com/Dl0057754/Wex-PB-Tool/pipeline"
	"github.com/Dl0057754/Wex-PB-Tool/templates"
)

// WriteAcceptedCSV writes formatted output rows as CSV, header first. An
// empty batch still gets a header row when kind is known.
func WriteAcceptedCSV(w io.Writer, kind templates.Kind, rows []templates.OutputRow) error {
	writer := csv.NewWriter(w)

	if headers := templates.Headers(kind); headers != nil {
		if err := writer.Write(headers); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	for i, row := range rows {
		if err := writer.Write(row.Values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// reviewHeaders is the column layout of the human-review workbook.
var reviewHeaders = []string{
	"Confidence", "Reason", "Standard Name", "Part Number", "Manufacturer",
	"Cost", "Category", "Labor Hours", "Enrichment", "Description", "Raw Input",
}

// WriteReviewXLSX writes the needs-review records as a spreadsheet. Humans
// triage these by confidence, so the raw input travels along.
func WriteReviewXLSX(w io.Writer, records []enrichment.PartRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Needs Review"
	f.SetSheetName("Sheet1", sheet)

	for col, header := range reviewHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, r := range records {
		values := []interface{}{
			r.ConfidenceScore, string(r.DegradedReason), r.StandardName,
			r.ModelNumber, r.Manufacturer, r.Cost, r.Category, r.LaborHours,
			string(r.EnrichmentStatus), r.Description, r.RawInput,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteRecordsJSON dumps the complete batch, scores and reasons included.
func WriteRecordsJSON(w io.Writer, result *pipeline.Result) error {
	payload := struct {
		BatchID     string                  `json:"batch_id"`
		Strategy    string                  `json:"strategy"`
		Threshold   int                     `json:"threshold"`
		Total       int                     `json:"total"`
		Accepted    int                     `json:"accepted"`
		NeedsReview int                     `json:"needs_review"`
		Records     []enrichment.PartRecord `json:"records"`
	}{
		BatchID:     result.BatchID,
		Strategy:    result.Strategy,
		Threshold:   result.Threshold,
		Total:       len(result.Records),
		Accepted:    len(result.Accepted),
		NeedsReview: len(result.NeedsReview),
		Records:     result.Records,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	return nil
}
