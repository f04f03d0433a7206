// Package server exposes the normalization pipeline over HTTP: upload a
// pricebook, process it with a chosen strategy and template, fetch or
// export the results.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dl0057754/Wex-PB-Tool/ai"
	"github.com/Dl0057754/Wex-PB-Tool/database"
	"github.com/Dl0057754/Wex-PB-Tool/enrichment"
	"github.com/Dl0057754/Wex-PB-Tool/internal/config"
	"github.com/Dl0057754/Wex-PB-Tool/server/middleware"
	"github.com/Dl0057754/Wex-PB-Tool/websearch"
)

// Server wires config, storage and the enrichment backends to the HTTP API.
type Server struct {
	cfg    *config.Config
	store  *database.BatchStore
	router *gin.Engine

	completion enrichment.CompletionClient
	lookup     enrichment.LookupClient
}

// New builds a server, its storage and its external clients.
func New(cfg *config.Config) (*Server, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return nil, err
	}

	store, err := database.OpenBatchStore(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:   cfg,
		store: store,
		completion: ai.NewClient(ai.Config{
			BaseURL: cfg.AIBaseURL,
			APIKey:  cfg.AIAPIKey,
			Model:   cfg.AIModel,
			Timeout: cfg.AITimeout,
		}),
		lookup: websearch.NewClient(websearch.ClientConfig{
			Timeout:  cfg.LookupTimeout,
			Pace:     cfg.LookupPace,
			CacheTTL: cfg.LookupCacheTTL,
		}),
	}
	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())

	router.GET("/healthz", s.handleHealth)

	api := router.Group("/api/v1")
	{
		api.POST("/pricebooks", s.handleUpload)
		api.POST("/pricebooks/:id/process", s.handleProcess)
		api.GET("/batches", s.handleListBatches)
		api.GET("/batches/:id", s.handleGetBatch)
		api.GET("/batches/:id/records", s.handleGetRecords)
		api.GET("/batches/:id/export", s.handleExport)
	}

	return router
}

// Router exposes the handler tree, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.store.Close()
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.store.Close()
	return err
}
