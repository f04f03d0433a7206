package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Dl0057754/Wex-PB-Tool/enrichment"
	"github.com/Dl0057754/Wex-PB-Tool/pipeline"
	"github.com/Dl0057754/Wex-PB-Tool/templates"
)

func testRecords() []enrichment.PartRecord {
	return []enrichment.PartRecord{
		{
			Manufacturer: "Copeland", ModelNumber: "ZR34K3-PFV", Cost: 612.40,
			Folder1: "HVAC Parts", Folder2: "Compressors",
			StandardName: "Compressor ZR34K3-PFV", Description: "Scroll compressor",
			Category: "compressor", LaborHours: 6, ConfidenceScore: 90,
			EnrichmentStatus: enrichment.StatusFound, RawInput: "row one",
		},
		{
			Manufacturer: "Unknown", Cost: 0,
			StandardName: "Part", Description: "mystery line",
			Category: "other", LaborHours: 2, ConfidenceScore: 40,
			EnrichmentStatus: enrichment.StatusNotFound,
			DegradedReason:   enrichment.ReasonLookupFailed, RawInput: "row two",
		},
	}
}

func TestWriteAcceptedCSV(t *testing.T) {
	rows := templates.FormatAll(testRecords()[:1], templates.KindSupplierLoader, templates.Config{
		SupplierName: "Acme Supply",
	})

	var buf bytes.Buffer
	require.NoError(t, WriteAcceptedCSV(&buf, templates.KindSupplierLoader, rows))

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 2, "header plus one row")

	assert.Equal(t, templates.Headers(templates.KindSupplierLoader), parsed[0])
	assert.Equal(t, "Acme Supply", parsed[1][0])
	assert.Equal(t, "ZR34K3-PFV", parsed[1][1])
	assert.Equal(t, "612.40", parsed[1][3])
}

func TestWriteAcceptedCSVEmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAcceptedCSV(&buf, templates.KindBundle, nil))

	parsed, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 1, "header only")
}

func TestWriteReviewXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReviewXLSX(&buf, testRecords()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Needs Review")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two records")

	assert.Equal(t, "Confidence", rows[0][0])
	assert.Equal(t, "90", rows[1][0])
	assert.Equal(t, "lookup_failed", rows[2][1])
	assert.Equal(t, "row two", rows[2][10])
}

func TestWriteRecordsJSON(t *testing.T) {
	result := &pipeline.Result{
		BatchID:     "batch-1",
		Strategy:    "rule_based",
		Threshold:   70,
		Records:     testRecords(),
		Accepted:    testRecords()[:1],
		NeedsReview: testRecords()[1:],
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRecordsJSON(&buf, result))

	var parsed struct {
		BatchID     string                  `json:"batch_id"`
		Total       int                     `json:"total"`
		Accepted    int                     `json:"accepted"`
		NeedsReview int                     `json:"needs_review"`
		Records     []enrichment.PartRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))

	assert.Equal(t, "batch-1", parsed.BatchID)
	assert.Equal(t, 2, parsed.Total)
	assert.Equal(t, 1, parsed.Accepted)
	assert.Equal(t, 1, parsed.NeedsReview)
	require.Len(t, parsed.Records, 2)
	assert.Equal(t, 90, parsed.Records[0].ConfidenceScore)
}
