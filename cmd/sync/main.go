// Command sync is the Showgrid catalog sync CLI.
//
// Usage:
//
//	showgrid-sync events
//	showgrid-sync venues
//	showgrid-sync dedupe --limit 20
//	showgrid-sync merge --primary <uuid> --duplicate <uuid>
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/showgrid/showgrid-data/internal/catalog"
	"github.com/showgrid/showgrid-data/internal/config"
	"github.com/showgrid/showgrid-data/internal/db"
	"github.com/showgrid/showgrid-data/internal/ingest"
	"github.com/showgrid/showgrid-data/internal/match"
	"github.com/showgrid/showgrid-data/internal/orchestrator"
	"github.com/showgrid/showgrid-data/internal/provider/eventbrite"
	"github.com/showgrid/showgrid-data/internal/provider/googleplaces"
	"github.com/showgrid/showgrid-data/internal/provider/ticketmaster"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "showgrid-sync",
		Short: "Showgrid catalog sync CLI",
	}

	root.AddCommand(eventsCmd())
	root.AddCommand(venuesCmd())
	root.AddCommand(dedupeCmd())
	root.AddCommand(mergeCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// events command
// --------------------------------------------------------------------------

func eventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Sync events from all configured provider sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				store := catalog.NewStore(pool.Pool)
				orch := buildOrchestrator(cfg, store)

				start := time.Now()
				result := orch.RunEventSync(ctx)
				logger.Info("Event sync finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Totals.Errors {
					logger.Error("sync error", "error", e)
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// venues command
// --------------------------------------------------------------------------

func venuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "venues",
		Short: "Discover venues from the places provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				store := catalog.NewStore(pool.Pool)
				orch := buildOrchestrator(cfg, store)

				start := time.Now()
				result := orch.RunVenueDiscovery(ctx)
				if len(result.PerSource) == 0 && len(result.Totals.Errors) > 0 {
					return fmt.Errorf("%s", result.Totals.Errors[0])
				}
				logger.Info("Venue discovery finished",
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				for _, e := range result.Totals.Errors {
					logger.Error("discovery error", "error", e)
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// dedupe command
// --------------------------------------------------------------------------

func dedupeCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Scan the catalog for duplicate events (read-only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				store := catalog.NewStore(pool.Pool)
				scanner := match.NewScanner(store, cfg.Match)

				start := time.Now()
				pairs, err := scanner.DeduplicateEvents(ctx)
				if err != nil {
					return fmt.Errorf("scan for duplicates: %w", err)
				}
				logger.Info("Duplicate scan finished",
					"duration", time.Since(start).Round(time.Second),
					"pairs", len(pairs))

				shown := pairs
				if limit > 0 && len(shown) > limit {
					shown = shown[:limit]
				}
				for _, p := range shown {
					fmt.Printf("%.2f  %-32s  %q <-> %q  (venue %s, %s)\n",
						p.Confidence, p.Reason,
						p.A.Title, p.B.Title,
						p.A.VenueID, p.A.StartTime.UTC().Format("2006-01-02"))
				}
				if limit > 0 && len(pairs) > limit {
					fmt.Printf("... and %d more\n", len(pairs)-limit)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Max pairs to print (0 = all)")
	return cmd
}

// --------------------------------------------------------------------------
// merge command
// --------------------------------------------------------------------------

func mergeCmd() *cobra.Command {
	var primaryStr, duplicateStr string
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge a duplicate venue into a primary venue",
		RunE: func(cmd *cobra.Command, args []string) error {
			primaryID, err := uuid.Parse(primaryStr)
			if err != nil {
				return fmt.Errorf("invalid --primary: %w", err)
			}
			duplicateID, err := uuid.Parse(duplicateStr)
			if err != nil {
				return fmt.Errorf("invalid --duplicate: %w", err)
			}
			if primaryID == duplicateID {
				return fmt.Errorf("--primary and --duplicate must differ")
			}

			return runWithPool(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				store := catalog.NewStore(pool.Pool)
				merged, err := store.MergeVenues(ctx, primaryID, duplicateID)
				if err != nil {
					return fmt.Errorf("merge venues: %w", err)
				}
				logger.Info("Venues merged",
					"primary", primaryID,
					"duplicate", duplicateID,
					"name", merged.Name)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&primaryStr, "primary", "", "Primary venue UUID (survives)")
	cmd.Flags().StringVar(&duplicateStr, "duplicate", "", "Duplicate venue UUID (deleted)")
	_ = cmd.MarkFlagRequired("primary")
	_ = cmd.MarkFlagRequired("duplicate")
	return cmd
}

// --------------------------------------------------------------------------
// Shared wiring
// --------------------------------------------------------------------------

// buildOrchestrator creates provider sources based on configured API keys.
func buildOrchestrator(cfg *config.Config, store *catalog.Store) *orchestrator.Orchestrator {
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

// runWithPool handles config loading, DB connection, and context cancellation.
func runWithPool(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
