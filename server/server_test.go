package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dl0057754/Wex-PB-Tool/enrichment"
	"github.com/Dl0057754/Wex-PB-Tool/internal/config"
	"github.com/Dl0057754/Wex-PB-Tool/templates"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:         "0",
		UploadDir:    t.TempDir(),
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
		Strategy:     enrichment.StrategyRuleBased,
		Template:     templates.KindBundle,
		Workers:      2,
		SupplierName: "Acme Supply",
		LaborRate:    templates.DefaultLaborRate,
		LaborCost:    templates.DefaultLaborCost,
		Markup:       templates.DefaultMarkup,
	}

	srv, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { srv.store.Close() })
	return srv
}

func uploadCSV(t *testing.T, srv *Server, content string) string {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "pricebook.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/api/v1/pricebooks", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

const testPricebook = `Acme Supply Co,Quote
Part Number,Description,Price
ZR34K3-PFV,Copeland Scroll Compressor,612.40
,no part number here,
CAP-4455,Dual Run Capacitor 45/5 MFD,18.75
`

func TestUploadAndProcess(t *testing.T) {
	srv := newTestServer(t)
	id := uploadCSV(t, srv, testPricebook)

	req := httptest.NewRequest("POST", "/api/v1/pricebooks/"+id+"/process",
		strings.NewReader(`{"strategy": "rule_based", "template": "bundle", "threshold": 80}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		BatchID     string `json:"batch_id"`
		Total       int    `json:"total"`
		Accepted    int    `json:"accepted"`
		NeedsReview int    `json:"needs_review"`
		Threshold   int    `json:"threshold"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 80, resp.Threshold)
	assert.Equal(t, resp.Total, resp.Accepted+resp.NeedsReview)
	assert.Equal(t, 2, resp.Accepted, "rows with both part number and price score 85")
	assert.Equal(t, 1, resp.NeedsReview, "partial row scores 70")

	// Batch is persisted and exportable.
	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/batches/"+resp.BatchID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/batches/"+resp.BatchID+"/export?format=csv", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ZR34K3-PFV")
	assert.Contains(t, w.Body.String(), "Standard Price")
}

func TestProcessUnknownUpload(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest("POST", "/api/v1/pricebooks/no-such-id/process", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProcessRejectsNonUUIDID(t *testing.T) {
	srv := newTestServer(t)
	uploadCSV(t, srv, testPricebook)

	// Glob metacharacters in the ID must not resolve to someone else's
	// staged file.
	for _, id := range []string{"*", "%2A", "[a-f0-9-]*", "%3F", "4c6b2a"} {
		req := httptest.NewRequest("POST", "/api/v1/pricebooks/"+id+"/process", nil)
		w := httptest.NewRecorder()
		srv.Router().ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code, "id %q", id)
	}
}

func TestProcessEmptyBodyUsesDefaults(t *testing.T) {
	srv := newTestServer(t)
	id := uploadCSV(t, srv, testPricebook)

	req := httptest.NewRequest("POST", "/api/v1/pricebooks/"+id+"/process", nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Strategy string `json:"strategy"`
		Template string `json:"template"`
		Total    int    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rule_based", resp.Strategy)
	assert.Equal(t, "bundle", resp.Template)
	assert.Equal(t, 3, resp.Total)
}

func TestUploadRejectsUnknownType(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, _ := mw.CreateFormFile("file", "malware.exe")
	part.Write([]byte("nope"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/v1/pricebooks", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/healthz", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))
}
