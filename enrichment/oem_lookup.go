package enrichment

import (
	"context"
	"log"
	"strings"

	"github.com/Dl0057754/Wex-PB-Tool/classification"
	"github.com/Dl0057754/Wex-PB-Tool/extractors"
	"github.com/Dl0057754/Wex-PB-Tool/ingest"
)

// LookupClient is the external-knowledge dependency of the OEM-lookup
// strategy: given a part number and the configured brand/distributor domain
// it returns a short descriptive snippet, or "" when nothing was found.
// Implementations own their own pacing and timeout.
type LookupClient interface {
	Lookup(ctx context.Context, partNumber, brand, domain string) (string, error)
}

// Confidence signals for the OEM-lookup strategy. Each independent signal
// contributes a fixed increment on top of the base, capped at 100.
const (
	oemConfidenceBase    = 60
	oemBonusPartNumber   = 15
	oemBonusPrice        = 10
	oemBonusDescription  = 15
	oemConfidenceCeiling = 100
)

// OEMLookupEnricher extracts locally first, then consults a distributor
// site for manufacturer-published descriptions of the part number.
type OEMLookupEnricher struct {
	client   LookupClient
	taxonomy *classification.Taxonomy
	labor    *classification.LaborEstimator
}

// NewOEMLookupEnricher creates the OEM-lookup strategy.
func NewOEMLookupEnricher(client LookupClient, taxonomy *classification.Taxonomy, labor *classification.LaborEstimator) *OEMLookupEnricher {
	return &OEMLookupEnricher{client: client, taxonomy: taxonomy, labor: labor}
}

// Name returns the strategy name.
func (e *OEMLookupEnricher) Name() string {
	return string(StrategyOEM)
}

// DefaultThreshold returns the review cutoff observed for this strategy.
func (e *OEMLookupEnricher) DefaultThreshold() int {
	return 70
}

// Enrich extracts part number and price, then issues one bounded lookup.
// A failed or empty lookup lowers confidence and sets the status; it never
// propagates as an error.
func (e *OEMLookupEnricher) Enrich(ctx context.Context, row ingest.RawRow, ec Context) PartRecord {
	rendered := row.Render()

	partNumber := extractors.ExtractPartNumber(row)
	cost := extractors.ExtractPrice(row)

	snippet := ""
	reason := ReasonNone
	if partNumber == "" {
		// Nothing meaningful to search for; the record still goes through
		// classification but carries the degradation reason.
		reason = ReasonExtractionEmpty
	} else {
		found, err := e.client.Lookup(ctx, partNumber, ec.Brand, ec.DistributorDomain)
		if err != nil {
			log.Printf("oem lookup failed for %q: %v", partNumber, err)
			reason = ReasonLookupFailed
		} else {
			snippet = strings.TrimSpace(found)
		}
	}

	status := StatusNotFound
	if snippet != "" {
		status = StatusFound
	}

	confidence := oemConfidenceBase
	if partNumber != "" {
		confidence += oemBonusPartNumber
	}
	if cost > 0 {
		confidence += oemBonusPrice
	}
	if snippet != "" {
		confidence += oemBonusDescription
	}
	if confidence > oemConfidenceCeiling {
		confidence = oemConfidenceCeiling
	}

	category := e.taxonomy.Categorize(rendered + " " + snippet)
	folder1, folder2, folder3 := e.taxonomy.Folders(category)

	description := truncateDescription(snippet)
	if description == "" {
		description = truncateDescription(rendered)
	}

	manufacturer := "Unknown"
	if ec.Brand != "" && snippet != "" {
		manufacturer = ec.Brand
	}

	return PartRecord{
		Manufacturer:     manufacturer,
		ModelNumber:      partNumber,
		Cost:             cost,
		Folder1:          folder1,
		Folder2:          folder2,
		Folder3:          folder3,
		StandardName:     standardName(e.taxonomy.DisplayName(category), partNumber),
		Description:      description,
		Category:         category,
		LaborHours:       e.labor.Estimate(category),
		ConfidenceScore:  confidence,
		EnrichmentStatus: status,
		DegradedReason:   reason,
		RawInput:         rendered,
	}
}
