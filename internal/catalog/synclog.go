package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertSyncLog appends one audit row. Rows are never updated afterward.
func (s *Store) InsertSyncLog(ctx context.Context, entry *SyncLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	var errs interface{}
	if len(entry.Errors) > 0 {
		errs = entry.Errors
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sync_logs (
			id, source, status, events_created, events_updated, venues_created,
			errors, duration_ms, started_at, completed_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		entry.ID, entry.Source, entry.Status, entry.EventsCreated,
		entry.EventsUpdated, entry.VenuesCreated, errs,
		entry.Duration.Milliseconds(), entry.StartedAt, entry.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sync log: %w", err)
	}
	return nil
}

// RecentSyncLogs returns the newest entries, optionally filtered by source.
func (s *Store) RecentSyncLogs(ctx context.Context, source string, limit int) ([]SyncLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows pgx.Rows
	var err error
	if source != "" {
		rows, err = s.pool.Query(ctx, "recent_sync_logs_by_source", source, limit)
	} else {
		rows, err = s.pool.Query(ctx, "recent_sync_logs", limit)
	}
	if err != nil {
		return nil, fmt.Errorf("recent sync logs: %w", err)
	}
	defer rows.Close()

	var entries []SyncLogEntry
	for rows.Next() {
		var e SyncLogEntry
		var durationMs int64
		err := rows.Scan(
			&e.ID, &e.Source, &e.Status, &e.EventsCreated, &e.EventsUpdated,
			&e.VenuesCreated, &e.Errors, &durationMs, &e.StartedAt, &e.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sync log: %w", err)
		}
		e.Duration = time.Duration(durationMs) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
