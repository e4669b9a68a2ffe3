package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// VenueByID returns a single venue, or ErrNotFound.
func (s *Store) VenueByID(ctx context.Context, id uuid.UUID) (*Venue, error) {
	v, err := scanVenue(s.pool.QueryRow(ctx, "venue_by_id", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("venue %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("venue by id: %w", err)
	}
	return v, nil
}

// VenueByPlaceID looks a venue up by its unique places-provider id.
// Returns (nil, nil) when no venue carries that id.
func (s *Store) VenueByPlaceID(ctx context.Context, placeID string) (*Venue, error) {
	v, err := scanVenue(s.pool.QueryRow(ctx, "venue_by_place_id", placeID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("venue by place id: %w", err)
	}
	return v, nil
}

// VenuesByCity returns all venues whose city matches case-insensitively.
func (s *Store) VenuesByCity(ctx context.Context, city string) ([]Venue, error) {
	rows, err := s.pool.Query(ctx, "venues_by_city", city)
	if err != nil {
		return nil, fmt.Errorf("venues by city: %w", err)
	}
	return collectVenues(rows)
}

// VenuesInBox returns venues with coordinates inside the bounding box.
func (s *Store) VenuesInBox(ctx context.Context, minLat, maxLat, minLng, maxLng float64) ([]Venue, error) {
	rows, err := s.pool.Query(ctx, "venues_in_box", minLat, maxLat, minLng, maxLng)
	if err != nil {
		return nil, fmt.Errorf("venues in box: %w", err)
	}
	return collectVenues(rows)
}

// VenueCity returns the city of a venue, or ErrNotFound.
func (s *Store) VenueCity(ctx context.Context, id uuid.UUID) (*string, error) {
	var city *string
	err := s.pool.QueryRow(ctx, "venue_city", id).Scan(&city)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("venue %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("venue city: %w", err)
	}
	return city, nil
}

// CreateVenue inserts a new venue row. The id is assigned here when unset.
func (s *Store) CreateVenue(ctx context.Context, v *Venue) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO venues (
			id, name, street, city, state, zip, country,
			latitude, longitude, place_id, description, website, image_url,
			rating, capacity, verified, source
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING created_at, updated_at`,
		v.ID, v.Name, v.Street, v.City, v.State, v.Zip, v.Country,
		v.Latitude, v.Longitude, v.PlaceID, v.Description, v.Website, v.ImageURL,
		v.Rating, v.Capacity, v.Verified, v.Source,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create venue: %w", err)
	}
	return nil
}

// UpdateVenue overwrites all mutable venue columns from v.
func (s *Store) UpdateVenue(ctx context.Context, v *Venue) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE venues SET
			name = $2, street = $3, city = $4, state = $5, zip = $6, country = $7,
			latitude = $8, longitude = $9, place_id = $10, description = $11,
			website = $12, image_url = $13, rating = $14, capacity = $15,
			verified = $16, source = $17, updated_at = NOW()
		WHERE id = $1`,
		v.ID, v.Name, v.Street, v.City, v.State, v.Zip, v.Country,
		v.Latitude, v.Longitude, v.PlaceID, v.Description, v.Website, v.ImageURL,
		v.Rating, v.Capacity, v.Verified, v.Source,
	)
	if err != nil {
		return fmt.Errorf("update venue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("venue %s: %w", v.ID, ErrNotFound)
	}
	return nil
}

// FillVenueFields backfills NULL metadata columns from v without clobbering
// values the catalog already holds. Used on re-sync when a source has fresher
// detail for an already-matched venue.
func (s *Store) FillVenueFields(ctx context.Context, v *Venue) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE venues SET
			street = COALESCE(street, $2),
			state = COALESCE(state, $3),
			zip = COALESCE(zip, $4),
			country = COALESCE(country, $5),
			latitude = COALESCE(latitude, $6),
			longitude = COALESCE(longitude, $7),
			place_id = COALESCE(place_id, $8),
			description = COALESCE(description, $9),
			website = COALESCE(website, $10),
			image_url = COALESCE(image_url, $11),
			rating = COALESCE(rating, $12),
			capacity = COALESCE(capacity, $13),
			updated_at = NOW()
		WHERE id = $1`,
		v.ID, v.Street, v.State, v.Zip, v.Country, v.Latitude, v.Longitude,
		v.PlaceID, v.Description, v.Website, v.ImageURL, v.Rating, v.Capacity,
	)
	if err != nil {
		return fmt.Errorf("fill venue fields: %w", err)
	}
	return nil
}
