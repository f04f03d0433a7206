package enrichment

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/Dl0057754/Wex-PB-Tool/classification"
	"github.com/Dl0057754/Wex-PB-Tool/ingest"
)

// CompletionClient is the text-completion dependency of the AI-assisted
// strategy. Implementations get one bounded attempt per row; retries are the
// caller's concern and deliberately not performed here.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AIAssistedEnricher delegates extraction of every field to a reasoning
// call over the row's rendered text plus a few worked examples.
type AIAssistedEnricher struct {
	client   CompletionClient
	taxonomy *classification.Taxonomy
	labor    *classification.LaborEstimator
}

// NewAIAssistedEnricher creates the AI-assisted strategy.
func NewAIAssistedEnricher(client CompletionClient, taxonomy *classification.Taxonomy, labor *classification.LaborEstimator) *AIAssistedEnricher {
	return &AIAssistedEnricher{client: client, taxonomy: taxonomy, labor: labor}
}

// Name returns the strategy name.
func (e *AIAssistedEnricher) Name() string {
	return string(StrategyAI)
}

// DefaultThreshold returns the review cutoff observed for this strategy.
func (e *AIAssistedEnricher) DefaultThreshold() int {
	return 85
}

// aiReply is the structured response requested from the model. GiveUp is the
// explicit "cannot extract" sentinel.
type aiReply struct {
	Manufacturer string  `json:"manufacturer"`
	ModelNumber  string  `json:"model_number"`
	Cost         float64 `json:"cost"`
	Category     string  `json:"category"`
	Description  string  `json:"description"`
	Confidence   int     `json:"confidence"`
	GiveUp       bool    `json:"give_up"`
}

const aiPromptHeader = `You extract structured part data from one row of an HVAC distributor pricebook.
Reply with a single JSON object and nothing else, using these keys:
manufacturer, model_number, cost (number), category, description, confidence (0-100), give_up (bool).
If the row cannot be read as a part, reply {"give_up": true}.

Example row: Item: CPT-0047 | Desc: COPELAND SCROLL COMPRESSOR ZR34K3-PFV-230 | List: $612.40
Example reply: {"manufacturer": "Copeland", "model_number": "ZR34K3-PFV-230", "cost": 612.40, "category": "compressor", "description": "Copeland scroll compressor ZR34K3, 230V single phase", "confidence": 92, "give_up": false}

Example row: SKU: 43-25133-05 | RHEEM DUAL RUN CAPACITOR 45/5 MFD 440V | 18.75
Example reply: {"manufacturer": "Rheem", "model_number": "43-25133-05", "cost": 18.75, "category": "capacitor", "description": "Rheem dual run capacitor 45/5 MFD 440V round", "confidence": 90, "give_up": false}

Row: `

// Enrich sends the rendered row to the completion client and parses the
// structured reply. Any transport failure or unparseable response yields a
// zero-confidence stub with a reason code; the batch never sees an error.
func (e *AIAssistedEnricher) Enrich(ctx context.Context, row ingest.RawRow, ec Context) PartRecord {
	rendered := row.Render()

	reply, err := e.client.Complete(ctx, aiPromptHeader+rendered)
	if err != nil {
		log.Printf("ai enrichment unavailable for row %d: %v", row.Index, err)
		return e.stub(rendered, ReasonAIUnavailable)
	}

	parsed, ok := parseAIReply(reply)
	if !ok || parsed.GiveUp {
		return e.stub(rendered, ReasonAIMalformed)
	}

	category := parsed.Category
	if _, known := e.taxonomy.Lookup(category); !known {
		category = e.taxonomy.Categorize(parsed.Description + " " + rendered)
	}
	folder1, folder2, folder3 := e.taxonomy.Folders(category)

	manufacturer := strings.TrimSpace(parsed.Manufacturer)
	if manufacturer == "" {
		manufacturer = "Unknown"
	}
	cost := parsed.Cost
	if cost < 0 {
		cost = 0
	}

	confidence := parsed.Confidence
	if confidence <= 0 {
		// Model skipped the confidence key: fall back to the rule-based split.
		confidence = ruleBasedConfidencePartial
		if parsed.ModelNumber != "" && cost > 0 {
			confidence = ruleBasedConfidenceFull
		}
	}
	if confidence > 100 {
		confidence = 100
	}

	description := truncateDescription(parsed.Description)
	if description == "" {
		description = truncateDescription(rendered)
	}

	return PartRecord{
		Manufacturer:     manufacturer,
		ModelNumber:      strings.TrimSpace(parsed.ModelNumber),
		Cost:             cost,
		Folder1:          folder1,
		Folder2:          folder2,
		Folder3:          folder3,
		StandardName:     standardName(e.taxonomy.DisplayName(category), strings.TrimSpace(parsed.ModelNumber)),
		Description:      description,
		Category:         category,
		LaborHours:       e.labor.Estimate(category),
		ConfidenceScore:  confidence,
		EnrichmentStatus: StatusNotAttempted,
		RawInput:         rendered,
	}
}

// stub is the minimal zero-confidence record produced when the model call
// fails or gives up.
func (e *AIAssistedEnricher) stub(rendered string, reason DegradedReason) PartRecord {
	folder1, folder2, folder3 := e.taxonomy.Folders(classification.DefaultOther)
	return PartRecord{
		Manufacturer:     "Unknown",
		Folder1:          folder1,
		Folder2:          folder2,
		Folder3:          folder3,
		StandardName:     e.taxonomy.DisplayName(classification.DefaultOther),
		Description:      truncateDescription(rendered),
		Category:         classification.DefaultOther,
		LaborHours:       e.labor.Estimate(classification.DefaultOther),
		ConfidenceScore:  0,
		EnrichmentStatus: StatusNotAttempted,
		DegradedReason:   reason,
		RawInput:         rendered,
	}
}

// parseAIReply tolerates prose around the JSON object: it parses from the
// first '{' to the last '}' in the reply.
func parseAIReply(reply string) (aiReply, bool) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end < start {
		return aiReply{}, false
	}

	var parsed aiReply
	if err := json.Unmarshal([]byte(reply[start:end+1]), &parsed); err != nil {
		return aiReply{}, false
	}
	return parsed, true
}
