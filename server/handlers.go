package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Dl0057754/Wex-PB-Tool/enrichment"
	"github.com/Dl0057754/Wex-PB-Tool/export"
	"github.com/Dl0057754/Wex-PB-Tool/ingest"
	"github.com/Dl0057754/Wex-PB-Tool/pipeline"
	"github.com/Dl0057754/Wex-PB-Tool/review"
	"github.com/Dl0057754/Wex-PB-Tool/templates"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleUpload accepts a multipart pricebook file and stages it for
// processing. The returned ID addresses the staged file, not a batch.
func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".csv", ".txt", ".tsv", ".xlsx", ".xlsm":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported file type %q", ext)})
		return
	}

	id := uuid.New().String()
	dest := filepath.Join(s.cfg.UploadDir, id+ext)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":       id,
		"filename": file.Filename,
	})
}

// processRequest selects strategy, template and pricing for one run. Every
// field is optional; configuration defaults apply.
type processRequest struct {
	Strategy     string  `json:"strategy"`
	Template     string  `json:"template"`
	SupplierName string  `json:"supplier_name"`
	Threshold    int     `json:"threshold"`
	LaborRate    float64 `json:"labor_rate"`
	LaborCost    float64 `json:"labor_cost"`
	Brand        string  `json:"brand"`
	Domain       string  `json:"domain"`
}

// handleProcess runs the staged file through the pipeline and persists the
// batch.
func (s *Server) handleProcess(c *gin.Context) {
	// An empty body is a valid request; configuration defaults apply.
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	path, err := s.stagedFile(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	strategy := s.cfg.Strategy
	if req.Strategy != "" {
		strategy, err = enrichment.ParseStrategy(req.Strategy)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	kind := s.cfg.Template
	if req.Template != "" {
		kind, err = templates.ParseKind(req.Template)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if req.Threshold < 0 || req.Threshold > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "threshold must be in [0, 100]"})
		return
	}

	rows, err := ingest.ReadFile(path)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	enricher, err := enrichment.New(strategy, enrichment.Deps{
		Completion: s.completion,
		Lookup:     s.lookup,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier := req.SupplierName
	if supplier == "" {
		supplier = s.cfg.SupplierName
	}
	formatCfg := templates.Config{
		SupplierName: supplier,
		LaborRate:    firstPositive(req.LaborRate, s.cfg.LaborRate),
		LaborCost:    firstPositive(req.LaborCost, s.cfg.LaborCost),
		Markup:       s.cfg.Markup,
	}

	threshold := req.Threshold
	if threshold == 0 {
		threshold = s.cfg.Threshold
	}

	brand := req.Brand
	if brand == "" {
		brand = s.cfg.LookupBrand
	}
	domain := req.Domain
	if domain == "" {
		domain = s.cfg.LookupDomain
	}

	p := pipeline.New(enricher, pipeline.Options{
		Workers:   s.cfg.Workers,
		Threshold: threshold,
		Template:  kind,
		Format:    formatCfg,
		Enrich: enrichment.Context{
			SupplierName:      supplier,
			Brand:             brand,
			DistributorDomain: domain,
		},
	})

	result, err := p.Run(c.Request.Context(), rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.SaveResult(result, string(kind), supplier); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"batch_id":     result.BatchID,
		"strategy":     result.Strategy,
		"template":     string(kind),
		"threshold":    result.Threshold,
		"total":        len(result.Records),
		"accepted":     len(result.Accepted),
		"needs_review": len(result.NeedsReview),
	})
}

func (s *Server) handleListBatches(c *gin.Context) {
	batches, err := s.store.ListBatches(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

func (s *Server) handleGetBatch(c *gin.Context) {
	batch, err := s.store.GetBatch(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (s *Server) handleGetRecords(c *gin.Context) {
	records, err := s.store.GetRecords(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

// handleExport re-derives the output artifacts from the stored batch:
// format=csv for accepted rows, format=review for the human-review
// workbook, format=json for the full dump.
func (s *Server) handleExport(c *gin.Context) {
	id := c.Param("id")
	batch, err := s.store.GetBatch(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	records, err := s.store.GetRecords(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	kind := templates.Kind(batch.Template)
	accepted, needsReview := review.Partition(records, batch.Threshold)

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		rows := templates.FormatAll(accepted, kind, templates.Config{
			SupplierName: batch.Supplier,
			LaborRate:    s.cfg.LaborRate,
			LaborCost:    s.cfg.LaborCost,
			Markup:       s.cfg.Markup,
		})
		var buf bytes.Buffer
		if err := export.WriteAcceptedCSV(&buf, kind, rows); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_accepted.csv", id))
		c.Data(http.StatusOK, "text/csv", buf.Bytes())

	case "review":
		var buf bytes.Buffer
		if err := export.WriteReviewXLSX(&buf, needsReview); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_review.xlsx", id))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())

	case "json":
		c.JSON(http.StatusOK, gin.H{
			"batch":   batch,
			"records": records,
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv, review or json"})
	}
}

// stagedFile resolves an upload ID back to its file on disk. Uploads are
// staged under uuid names, so anything that does not parse as a uuid is
// rejected before it can reach the filesystem.
func (s *Server) stagedFile(id string) (string, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("invalid upload id")
	}
	matches, err := filepath.Glob(filepath.Join(s.cfg.UploadDir, uid.String()+".*"))
	if err != nil || len(matches) == 0 {
		return "", fmt.Errorf("upload %s not found", uid)
	}
	return matches[0], nil
}

func firstPositive(values ...float64) float64 {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
