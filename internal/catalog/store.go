package catalog

import (
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store executes all catalog reads and writes against a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store on top of an existing pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// scanVenue scans one venue row in venueColumns order.
func scanVenue(row pgx.Row) (*Venue, error) {
	var v Venue
	err := row.Scan(
		&v.ID, &v.Name, &v.Street, &v.City, &v.State, &v.Zip, &v.Country,
		&v.Latitude, &v.Longitude, &v.PlaceID, &v.Description, &v.Website,
		&v.ImageURL, &v.Rating, &v.Capacity, &v.Verified, &v.Source,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func collectVenues(rows pgx.Rows) ([]Venue, error) {
	defer rows.Close()
	var venues []Venue
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venue: %w", err)
		}
		venues = append(venues, *v)
	}
	return venues, rows.Err()
}

// scanEvent scans one event row in eventColumns order.
func scanEvent(row pgx.Row) (*Event, error) {
	var e Event
	err := row.Scan(
		&e.ID, &e.Title, &e.StartTime, &e.EndTime, &e.VenueID, &e.CategoryID,
		&e.ExternalSource, &e.ExternalID, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectEvents(rows pgx.Rows) ([]Event, error) {
	defer rows.Close()
	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
