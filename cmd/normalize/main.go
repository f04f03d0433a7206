// Command normalize runs one pricebook through the pipeline from the shell:
// accepted rows land in a CSV, needs-review records in a workbook, and the
// full scored record set in a JSON dump.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Dl0057754/Wex-PB-Tool/ai"
	"github.com/Dl0057754/Wex-PB-Tool/enrichment"
	"github.com/Dl0057754/Wex-PB-Tool/export"
	"github.com/Dl0057754/Wex-PB-Tool/ingest"
	"github.com/Dl0057754/Wex-PB-Tool/internal/config"
	"github.com/Dl0057754/Wex-PB-Tool/pipeline"
	"github.com/Dl0057754/Wex-PB-Tool/templates"
	"github.com/Dl0057754/Wex-PB-Tool/websearch"
)

func main() {
	var (
		input     = flag.String("input", "", "pricebook file to process (csv or xlsx)")
		strategy  = flag.String("strategy", "", "enrichment strategy: rule_based, ai_assisted, oem_lookup")
		template  = flag.String("template", "", "output template: bundle, single_part, supplier_loader")
		supplier  = flag.String("supplier", "", "supplier name written into output rows")
		threshold = flag.Int("threshold", 0, "confidence threshold override (0 = strategy default)")
		outDir    = flag.String("out", ".", "output directory")
	)
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *strategy != "" {
		cfg.Strategy = enrichment.Strategy(*strategy)
	}
	if *template != "" {
		cfg.Template = templates.Kind(*template)
	}
	if *supplier != "" {
		cfg.SupplierName = *supplier
	}
	if *threshold != 0 {
		cfg.Threshold = *threshold
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	rows, err := ingest.ReadFile(*input)
	if err != nil {
		log.Fatalf("failed to ingest %s: %v", *input, err)
	}
	log.Printf("ingested %d rows from %s", len(rows), *input)

	enricher, err := enrichment.New(cfg.Strategy, enrichment.Deps{
		Completion: ai.NewClient(ai.Config{
			BaseURL: cfg.AIBaseURL,
			APIKey:  cfg.AIAPIKey,
			Model:   cfg.AIModel,
			Timeout: cfg.AITimeout,
		}),
		Lookup: websearch.NewClient(websearch.ClientConfig{
			Timeout:  cfg.LookupTimeout,
			Pace:     cfg.LookupPace,
			CacheTTL: cfg.LookupCacheTTL,
		}),
	})
	if err != nil {
		log.Fatalf("failed to build enricher: %v", err)
	}

	p := pipeline.New(enricher, pipeline.Options{
		Workers:   cfg.Workers,
		Threshold: cfg.Threshold,
		Template:  cfg.Template,
		Format: templates.Config{
			SupplierName: cfg.SupplierName,
			LaborRate:    cfg.LaborRate,
			LaborCost:    cfg.LaborCost,
			Markup:       cfg.Markup,
		},
		Enrich: enrichment.Context{
			SupplierName:      cfg.SupplierName,
			Brand:             cfg.LookupBrand,
			DistributorDomain: cfg.LookupDomain,
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := p.Run(ctx, rows)
	if err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	base := filepath.Join(*outDir, result.BatchID[:8])
	if err := writeFile(base+"_accepted.csv", func(f *os.File) error {
		return export.WriteAcceptedCSV(f, cfg.Template, result.Rows)
	}); err != nil {
		log.Fatalf("failed to write accepted csv: %v", err)
	}
	if err := writeFile(base+"_review.xlsx", func(f *os.File) error {
		return export.WriteReviewXLSX(f, result.NeedsReview)
	}); err != nil {
		log.Fatalf("failed to write review workbook: %v", err)
	}
	if err := writeFile(base+"_records.json", func(f *os.File) error {
		return export.WriteRecordsJSON(f, result)
	}); err != nil {
		log.Fatalf("failed to write records dump: %v", err)
	}

	fmt.Printf("batch %s: %d rows, %d accepted, %d for review (threshold %d)\n",
		result.BatchID, len(result.Records), len(result.Accepted),
		len(result.NeedsReview), result.Threshold)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
