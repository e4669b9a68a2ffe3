// Command api is the Showgrid Data API server.
//
// Usage:
//
//	showgrid-api
//	API_PORT=8080 showgrid-api

// @title Showgrid Data API
// @version 1.0.0
// @description Event and venue catalog API with provider sync orchestration, entity resolution, and duplicate review endpoints.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Showgrid
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/showgrid/showgrid-data/internal/api"
	"github.com/showgrid/showgrid-data/internal/cache"
	"github.com/showgrid/showgrid-data/internal/catalog"
	"github.com/showgrid/showgrid-data/internal/config"
	"github.com/showgrid/showgrid-data/internal/db"
	"github.com/showgrid/showgrid-data/internal/ingest"
	"github.com/showgrid/showgrid-data/internal/match"
	"github.com/showgrid/showgrid-data/internal/orchestrator"
	"github.com/showgrid/showgrid-data/internal/provider/eventbrite"
	"github.com/showgrid/showgrid-data/internal/provider/googleplaces"
	"github.com/showgrid/showgrid-data/internal/provider/ticketmaster"

	_ "github.com/showgrid/showgrid-data/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Wire the catalog, matchers, and sync orchestration
	store := catalog.NewStore(pool.Pool)
	scanner := match.NewScanner(store, cfg.Match)
	orch := buildOrchestrator(cfg, store, logger)

	// Create router
	router := api.NewRouter(pool.Pool, store, appCache, cfg, orch, scanner)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute, // sync runs complete within the request
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Showgrid Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}

// buildOrchestrator constructs the provider sources from configured
// credentials. Sources with missing credentials get a nil client and report
// themselves unconfigured.
func buildOrchestrator(cfg *config.Config, store *catalog.Store, logger *slog.Logger) *orchestrator.Orchestrator {
	venues := match.NewVenueMatcher(store, cfg.Match)
	events := match.NewEventMatcher(store, cfg.Match)
	categories := ingest.NewCategoryCache(store)
	ingestor := ingest.NewIngestor(store, venues, events, categories, logger)

	var tm *ticketmaster.Client
	if cfg.TicketmasterAPIKey != "" {
		tm = ticketmaster.NewClient(cfg.TicketmasterAPIKey, logger)
	}
	var eb *eventbrite.Client
	if cfg.EventbriteToken != "" {
		eb = eventbrite.NewClient(cfg.EventbriteToken, logger)
	}
	var gp *googleplaces.Client
	if cfg.GooglePlacesAPIKey != "" {
		gp = googleplaces.NewClient(cfg.GooglePlacesAPIKey, logger)
	}

	sources := []orchestrator.Source{
		ingest.NewTicketmasterSource(tm, ingestor, cfg.SyncCities),
		ingest.NewEventbriteSource(eb, ingestor, cfg.SyncCities),
	}
	discovery := ingest.NewPlacesSource(gp, ingestor, cfg.SyncCities)

	return orchestrator.New(sources, discovery, store, logger)
}
