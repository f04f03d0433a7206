package enrichment

import (
	"context"

	"github.com/Dl0057754/Wex-PB-Tool/classification"
	"github.com/Dl0057754/Wex-PB-Tool/extractors"
	"github.com/Dl0057754/Wex-PB-Tool/ingest"
)

// Confidence levels for the rule-based strategy: 85 when both the model
// number and a positive cost were extracted, 70 otherwise.
const (
	ruleBasedConfidenceFull    = 85
	ruleBasedConfidencePartial = 70
)

// RuleBasedEnricher builds records from extraction and keyword
// classification alone. It is pure: no external calls, fully deterministic.
type RuleBasedEnricher struct {
	taxonomy *classification.Taxonomy
	labor    *classification.LaborEstimator
}

// NewRuleBasedEnricher creates the pure rule-based strategy.
func NewRuleBasedEnricher(taxonomy *classification.Taxonomy, labor *classification.LaborEstimator) *RuleBasedEnricher {
	return &RuleBasedEnricher{taxonomy: taxonomy, labor: labor}
}

// Name returns the strategy name.
func (e *RuleBasedEnricher) Name() string {
	return string(StrategyRuleBased)
}

// DefaultThreshold returns the review cutoff observed for this strategy.
func (e *RuleBasedEnricher) DefaultThreshold() int {
	return 70
}

// Enrich extracts part number and price, classifies the row text and fills
// every record field. Manufacturer stays "Unknown": nothing in a bare row
// identifies it reliably.
func (e *RuleBasedEnricher) Enrich(_ context.Context, row ingest.RawRow, _ Context) PartRecord {
	rendered := row.Render()

	partNumber := extractors.ExtractPartNumber(row)
	cost := extractors.ExtractPrice(row)

	category := e.taxonomy.Categorize(rendered + " " + partNumber)
	folder1, folder2, folder3 := e.taxonomy.Folders(category)

	confidence := ruleBasedConfidencePartial
	reason := ReasonExtractionEmpty
	if partNumber != "" && cost > 0 {
		confidence = ruleBasedConfidenceFull
		reason = ReasonNone
	}

	return PartRecord{
		Manufacturer:     "Unknown",
		ModelNumber:      partNumber,
		Cost:             cost,
		Folder1:          folder1,
		Folder2:          folder2,
		Folder3:          folder3,
		StandardName:     standardName(e.taxonomy.DisplayName(category), partNumber),
		Description:      truncateDescription(rendered),
		Category:         category,
		LaborHours:       e.labor.Estimate(category),
		ConfidenceScore:  confidence,
		EnrichmentStatus: StatusNotAttempted,
		DegradedReason:   reason,
		RawInput:         rendered,
	}
}
