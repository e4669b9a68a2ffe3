// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/sync.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/showgrid/showgrid-data/internal/match"
)

// --------------------------------------------------------------------------
// Source names — every ingestion source the orchestrator knows about
// --------------------------------------------------------------------------

const (
	SourceManual       = "manual"
	SourceTicketmaster = "ticketmaster"
	SourceEventbrite   = "eventbrite"
	SourceGooglePlaces = "google_places"
)

// --------------------------------------------------------------------------
// Table names — single source of truth, matches schema.sql
// --------------------------------------------------------------------------

const (
	VenuesTable     = "venues"
	EventsTable     = "events"
	CategoriesTable = "categories"
	SyncLogsTable   = "sync_logs"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (inbound API)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// External API credentials
	TicketmasterAPIKey string
	EventbriteToken    string
	GooglePlacesAPIKey string

	// Sync scope
	SyncCities []string

	// Matching thresholds, defaulted by match.DefaultThresholds and
	// overridable per deployment. Deliberately not re-tuned in code.
	Match match.Thresholds

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", envOr("SHOWGRID_DATABASE_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or SHOWGRID_DATABASE_URL must be set")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		TicketmasterAPIKey: envOr("TICKETMASTER_API_KEY", ""),
		EventbriteToken:    envOr("EVENTBRITE_OAUTH_TOKEN", ""),
		GooglePlacesAPIKey: envOr("GOOGLE_PLACES_API_KEY", ""),

		SyncCities: envList("SYNC_CITIES", []string{"Seattle"}),

		Match: loadThresholds(),

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// loadThresholds applies env overrides on top of the reference defaults.
func loadThresholds() match.Thresholds {
	t := match.DefaultThresholds()
	t.VenueNameSimilarity = envFloat("MATCH_VENUE_NAME_SIMILARITY", t.VenueNameSimilarity)
	t.VenueProximityKm = envFloat("MATCH_VENUE_PROXIMITY_KM", t.VenueProximityKm)
	t.TitleSimilarity = envFloat("MATCH_TITLE_SIMILARITY", t.TitleSimilarity)
	t.WeakTitleSimilarity = envFloat("MATCH_WEAK_TITLE_SIMILARITY", t.WeakTitleSimilarity)
	if h := envInt("MATCH_EVENT_CLOSENESS_HOURS", 0); h > 0 {
		t.EventCloseness = time.Duration(h) * time.Hour
	}
	if h := envInt("MATCH_EVENT_SEARCH_WINDOW_HOURS", 0); h > 0 {
		t.EventSearchWindow = time.Duration(h) * time.Hour
	}
	return t
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
