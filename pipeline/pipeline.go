// Package pipeline runs a batch end to end: raw rows through an enrichment
// strategy, the review gate and the output formatter.
package pipeline

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/Dl0057754/Wex-PB-Tool/enrichment"
	"github.com/Dl0057754/Wex-PB-Tool/ingest"
	"github.com/Dl0057754/Wex-PB-Tool/review"
	"github.com/Dl0057754/Wex-PB-Tool/templates"
)

// Options configures one batch run.
type Options struct {
	// Workers bounds per-row enrichment concurrency. Zero means serial.
	Workers int
	// Threshold overrides the strategy's default review cutoff when > 0.
	Threshold int
	Template  templates.Kind
	Format    templates.Config
	Enrich    enrichment.Context
}

// Result is the completed batch: every ingested row produced exactly one
// record, in source order, split by the review gate, with accepted records
// already projected into the selected template.
type Result struct {
	BatchID     string
	Strategy    string
	Threshold   int
	Records     []enrichment.PartRecord
	Accepted    []enrichment.PartRecord
	NeedsReview []enrichment.PartRecord
	Rows        []templates.OutputRow
}

// Pipeline binds a strategy to run options.
type Pipeline struct {
	enricher enrichment.Enricher
	opts     Options
}

// New creates a pipeline for a strategy.
func New(enricher enrichment.Enricher, opts Options) *Pipeline {
	return &Pipeline{enricher: enricher, opts: opts}
}

// Run enriches every row and assembles the batch result. Rows are processed
// under a worker pool but reassembled by original index, so the result is
// order-deterministic regardless of completion order. Cancellation is
// honored between rows: a cancelled batch returns the context error and no
// partial result.
func (p *Pipeline) Run(ctx context.Context, rows []ingest.RawRow) (*Result, error) {
	batchID := uuid.New().String()
	log.Printf("[%s] starting batch: strategy=%s rows=%d", batchID, p.enricher.Name(), len(rows))

	records := make([]enrichment.PartRecord, len(rows))

	workers := p.opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(rows) && len(rows) > 0 {
		workers = len(rows)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				records[i] = p.enricher.Enrich(ctx, rows[i], p.opts.Enrich)
			}
		}()
	}

	cancelled := false
feed:
	for i := range rows {
		select {
		case <-ctx.Done():
			cancelled = true
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled || ctx.Err() != nil {
		log.Printf("[%s] batch cancelled: %v", batchID, ctx.Err())
		return nil, ctx.Err()
	}

	threshold := p.opts.Threshold
	if threshold <= 0 {
		threshold = p.enricher.DefaultThreshold()
	}

	accepted, needsReview := review.Partition(records, threshold)
	outRows := templates.FormatAll(accepted, p.opts.Template, p.opts.Format)

	log.Printf("[%s] batch complete: accepted=%d needs_review=%d threshold=%d",
		batchID, len(accepted), len(needsReview), threshold)

	return &Result{
		BatchID:     batchID,
		Strategy:    p.enricher.Name(),
		Threshold:   threshold,
		Records:     records,
		Accepted:    accepted,
		NeedsReview: needsReview,
		Rows:        outRows,
	}, nil
}
