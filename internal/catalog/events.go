package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// EventByExternalID looks an event up by its (source, id) compound key.
// Returns (nil, nil) when no event carries that key.
func (s *Store) EventByExternalID(ctx context.Context, source, externalID string) (*Event, error) {
	e, err := scanEvent(s.pool.QueryRow(ctx, "event_by_external_id", source, externalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("event by external id: %w", err)
	}
	return e, nil
}

// EventsAtVenueBetween returns events at a venue starting inside [from, to].
func (s *Store) EventsAtVenueBetween(ctx context.Context, venueID uuid.UUID, from, to time.Time) ([]Event, error) {
	rows, err := s.pool.Query(ctx, "events_at_venue_between", venueID, from, to)
	if err != nil {
		return nil, fmt.Errorf("events at venue: %w", err)
	}
	return collectEvents(rows)
}

// EventsOnDayInCity returns events starting inside [dayStart, dayEnd) whose
// venue city matches case-insensitively.
func (s *Store) EventsOnDayInCity(ctx context.Context, dayStart, dayEnd time.Time, city string) ([]Event, error) {
	rows, err := s.pool.Query(ctx, "events_on_day_in_city", dayStart, dayEnd, city)
	if err != nil {
		return nil, fmt.Errorf("events on day in city: %w", err)
	}
	return collectEvents(rows)
}

// AllEventsWithCity loads every event joined with its venue city, ordered by
// venue then start time. Feeds the batch duplicate scanner.
func (s *Store) AllEventsWithCity(ctx context.Context) ([]EventWithCity, error) {
	rows, err := s.pool.Query(ctx, "events_with_city")
	if err != nil {
		return nil, fmt.Errorf("events with city: %w", err)
	}
	defer rows.Close()

	var events []EventWithCity
	for rows.Next() {
		var e EventWithCity
		err := rows.Scan(
			&e.ID, &e.Title, &e.StartTime, &e.EndTime, &e.VenueID, &e.CategoryID,
			&e.ExternalSource, &e.ExternalID, &e.Status, &e.CreatedAt, &e.UpdatedAt,
			&e.City,
		)
		if err != nil {
			return nil, fmt.Errorf("scan event with city: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// CreateEvent inserts a new event row. The id is assigned here when unset.
func (s *Store) CreateEvent(ctx context.Context, e *Event) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = EventStatusActive
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO events (
			id, title, start_time, end_time, venue_id, category_id,
			external_source, external_id, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		e.ID, e.Title, e.StartTime, e.EndTime, e.VenueID, e.CategoryID,
		e.ExternalSource, e.ExternalID, e.Status,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// UpdateEvent refreshes a re-synced event. External keys are only adopted
// when the row does not already carry them, preserving the compound-key
// uniqueness invariant.
func (s *Store) UpdateEvent(ctx context.Context, e *Event) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE events SET
			title = $2,
			start_time = $3,
			end_time = COALESCE($4, end_time),
			category_id = COALESCE($5, category_id),
			external_source = COALESCE(external_source, $6),
			external_id = COALESCE(external_id, $7),
			status = $8,
			updated_at = NOW()
		WHERE id = $1`,
		e.ID, e.Title, e.StartTime, e.EndTime, e.CategoryID,
		e.ExternalSource, e.ExternalID, e.Status,
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %s: %w", e.ID, ErrNotFound)
	}
	return nil
}
