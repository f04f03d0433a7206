// Package review gates enriched records: high-confidence records flow to
// the output templates, the rest go to a human.
package review

import "github.com/Dl0057754/Wex-PB-Tool/enrichment"

// Partition splits records into auto-accepted and needs-review by the
// confidence threshold. The split is stable, exhaustive and disjoint:
// records keep their relative order within each side, and every input
// record lands on exactly one side.
func Partition(records []enrichment.PartRecord, threshold int) (accepted, needsReview []enrichment.PartRecord) {
	accepted = make([]enrichment.PartRecord, 0, len(records))
	needsReview = make([]enrichment.PartRecord, 0)

	for _, r := range records {
		if r.ConfidenceScore >= threshold {
			accepted = append(accepted, r)
		} else {
			needsReview = append(needsReview, r)
		}
	}
	return accepted, needsReview
}
