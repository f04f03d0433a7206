// Package enrichment turns raw pricebook rows into canonical, scored part
// records. Three interchangeable strategies implement one contract; they
// differ only in how description, manufacturer and confidence are derived.
package enrichment

import (
	"strings"
	"unicode/utf8"
)

// EnrichmentStatus reports what an external lookup produced. Only the
// lookup-capable strategies ever move it off NotAttempted.
type EnrichmentStatus string

const (
	StatusNotAttempted EnrichmentStatus = "not_attempted"
	StatusFound        EnrichmentStatus = "found"
	StatusNotFound     EnrichmentStatus = "not_found"
)

// DegradedReason records why a record came back with reduced or zero
// confidence. Empty means the strategy ran cleanly. Row-level failures are
// absorbed into the record this way instead of erroring the batch.
type DegradedReason string

const (
	ReasonNone            DegradedReason = ""
	ReasonExtractionEmpty DegradedReason = "extraction_empty"
	ReasonAIUnavailable   DegradedReason = "ai_unavailable"
	ReasonAIMalformed     DegradedReason = "ai_malformed"
	ReasonLookupFailed    DegradedReason = "lookup_failed"
)

// maxDescriptionLen bounds the description carried into downstream tables.
const maxDescriptionLen = 180

// PartRecord is the canonical extracted entity. It is fully determined by
// its source row plus the strategy configuration, and immutable once built.
type PartRecord struct {
	Manufacturer     string           `json:"manufacturer"`
	ModelNumber      string           `json:"model_number"`
	Cost             float64          `json:"cost"`
	Folder1          string           `json:"folder_1"`
	Folder2          string           `json:"folder_2"`
	Folder3          string           `json:"folder_3"`
	StandardName     string           `json:"standard_name"`
	Description      string           `json:"description"`
	Category         string           `json:"category"`
	LaborHours       float64          `json:"labor_hours"`
	ConfidenceScore  int              `json:"confidence_score"`
	EnrichmentStatus EnrichmentStatus `json:"enrichment_status"`
	DegradedReason   DegradedReason   `json:"degraded_reason,omitempty"`
	RawInput         string           `json:"raw_input"`
}

// truncateDescription trims and bounds free text before it lands in a record.
// The cut never splits a multibyte character.
func truncateDescription(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > maxDescriptionLen {
		cut := maxDescriptionLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = strings.TrimSpace(text[:cut])
	}
	return text
}

// standardName builds the human-readable canonical label from the category
// display name and the model number.
func standardName(display, modelNumber string) string {
	if modelNumber == "" {
		return display
	}
	return display + " " + modelNumber
}
