// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/showgrid/showgrid-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

const venueColumns = `id, name, street, city, state, zip, country,
	latitude, longitude, place_id, description, website, image_url,
	rating, capacity, verified, source, created_at, updated_at`

const eventColumns = `id, title, start_time, end_time, venue_id, category_id,
	external_source, external_id, status, created_at, updated_at`

// registerPreparedStatements registers the statements the matchers, scanner,
// and ingestion layer run on every candidate. Prepared statements eliminate
// parse overhead on the hot resolution path.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Venue lookups (matcher strategies, in priority order)
		"venue_by_id":       "SELECT " + venueColumns + " FROM venues WHERE id = $1",
		"venue_by_place_id": "SELECT " + venueColumns + " FROM venues WHERE place_id = $1",
		"venues_by_city":    "SELECT " + venueColumns + " FROM venues WHERE LOWER(city) = LOWER($1)",
		"venues_in_box": "SELECT " + venueColumns + ` FROM venues
			WHERE latitude BETWEEN $1 AND $2 AND longitude BETWEEN $3 AND $4`,
		"venue_city": "SELECT city FROM venues WHERE id = $1",

		// Event lookups
		"event_by_external_id": "SELECT " + eventColumns + ` FROM events
			WHERE external_source = $1 AND external_id = $2`,
		"events_at_venue_between": "SELECT " + eventColumns + ` FROM events
			WHERE venue_id = $1 AND start_time BETWEEN $2 AND $3`,
		"events_on_day_in_city": `SELECT e.id, e.title, e.start_time, e.end_time,
			e.venue_id, e.category_id, e.external_source, e.external_id, e.status,
			e.created_at, e.updated_at
			FROM events e JOIN venues v ON v.id = e.venue_id
			WHERE e.start_time >= $1 AND e.start_time < $2 AND LOWER(v.city) = LOWER($3)`,

		// Batch duplicate scan
		"events_with_city": `SELECT e.id, e.title, e.start_time, e.end_time,
			e.venue_id, e.category_id, e.external_source, e.external_id, e.status,
			e.created_at, e.updated_at, v.city
			FROM events e JOIN venues v ON v.id = e.venue_id
			ORDER BY e.venue_id, e.start_time`,

		// Sync log recency queries
		"recent_sync_logs": `SELECT id, source, status, events_created, events_updated,
			venues_created, errors, duration_ms, started_at, completed_at
			FROM sync_logs ORDER BY started_at DESC LIMIT $1`,
		"recent_sync_logs_by_source": `SELECT id, source, status, events_created, events_updated,
			venues_created, errors, duration_ms, started_at, completed_at
			FROM sync_logs WHERE source = $1 ORDER BY started_at DESC LIMIT $2`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
