package enrichment

import (
	"context"
	"fmt"

	"github.com/Dl0057754/Wex-PB-Tool/classification"
	"github.com/Dl0057754/Wex-PB-Tool/ingest"
)

// Strategy selects one of the three interchangeable enrichment backends.
type Strategy string

const (
	StrategyRuleBased Strategy = "rule_based"
	StrategyAI        Strategy = "ai_assisted"
	StrategyOEM       Strategy = "oem_lookup"
)

// Context carries the run-level configuration every strategy sees. It is
// built once per batch and shared read-only across rows.
type Context struct {
	SupplierName string

	// OEM lookup settings: which brand to search for and which distributor
	// domain to search on. Both come from fixed enumerations in config.
	Brand             string
	DistributorDomain string
}

// Enricher is the single contract all three strategies implement. Enrich
// never returns an error: transport and parse failures degrade the record's
// confidence and set a DegradedReason instead of aborting the batch.
type Enricher interface {
	Enrich(ctx context.Context, row ingest.RawRow, ec Context) PartRecord
	Name() string

	// DefaultThreshold is the review-gate cutoff observed to work for the
	// strategy. Callers may override it per run.
	DefaultThreshold() int
}

// Deps bundles the collaborators strategies draw on. Taxonomy and Labor are
// required; Completion and Lookup are only needed by the strategies that
// call out.
type Deps struct {
	Taxonomy   *classification.Taxonomy
	Labor      *classification.LaborEstimator
	Completion CompletionClient
	Lookup     LookupClient
}

// New builds the enricher for a strategy.
func New(strategy Strategy, deps Deps) (Enricher, error) {
	if deps.Taxonomy == nil {
		deps.Taxonomy = classification.NewDefaultTaxonomy()
	}
	if deps.Labor == nil {
		deps.Labor = classification.NewDefaultLaborEstimator()
	}

	switch strategy {
	case StrategyRuleBased:
		return NewRuleBasedEnricher(deps.Taxonomy, deps.Labor), nil
	case StrategyAI:
		if deps.Completion == nil {
			return nil, fmt.Errorf("strategy %q requires a completion client", strategy)
		}
		return NewAIAssistedEnricher(deps.Completion, deps.Taxonomy, deps.Labor), nil
	case StrategyOEM:
		if deps.Lookup == nil {
			return nil, fmt.Errorf("strategy %q requires a lookup client", strategy)
		}
		return NewOEMLookupEnricher(deps.Lookup, deps.Taxonomy, deps.Labor), nil
	default:
		return nil, fmt.Errorf("unknown enrichment strategy %q", strategy)
	}
}

// ParseStrategy maps a config string onto a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyRuleBased, StrategyAI, StrategyOEM:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown enrichment strategy %q", s)
	}
}
