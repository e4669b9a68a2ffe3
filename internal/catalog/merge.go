package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// MergeVenues folds duplicate into primary: metadata is reconciled
// field-by-field, every event at the duplicate is re-pointed to the primary,
// and the duplicate row is deleted. All three writes run in one transaction,
// so a crash can never leave the catalog between states. Returns the
// refreshed primary record.
//
// Re-running a completed merge fails with ErrNotFound on the duplicate id,
// which callers treat as "nothing left to do".
func (s *Store) MergeVenues(ctx context.Context, primaryID, duplicateID uuid.UUID) (*Venue, error) {
	primary, err := s.VenueByID(ctx, primaryID)
	if err != nil {
		return nil, fmt.Errorf("merge primary: %w", err)
	}
	duplicate, err := s.VenueByID(ctx, duplicateID)
	if err != nil {
		return nil, fmt.Errorf("merge duplicate: %w", err)
	}

	merged := reconcileVenues(primary, duplicate)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin merge: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		"UPDATE events SET venue_id = $1, updated_at = NOW() WHERE venue_id = $2",
		primaryID, duplicateID,
	); err != nil {
		return nil, fmt.Errorf("re-point events: %w", err)
	}

	// The duplicate's place_id must be released before the primary can adopt it.
	if _, err := tx.Exec(ctx, "DELETE FROM venues WHERE id = $1", duplicateID); err != nil {
		return nil, fmt.Errorf("delete duplicate venue: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE venues SET
			name = $2, street = $3, city = $4, state = $5, zip = $6, country = $7,
			latitude = $8, longitude = $9, place_id = $10, description = $11,
			website = $12, image_url = $13, rating = $14, capacity = $15,
			verified = $16, updated_at = NOW()
		WHERE id = $1`,
		merged.ID, merged.Name, merged.Street, merged.City, merged.State,
		merged.Zip, merged.Country, merged.Latitude, merged.Longitude,
		merged.PlaceID, merged.Description, merged.Website, merged.ImageURL,
		merged.Rating, merged.Capacity, merged.Verified,
	); err != nil {
		return nil, fmt.Errorf("update primary venue: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit merge: %w", err)
	}

	return s.VenueByID(ctx, primaryID)
}

// reconcileVenues computes the merged field set. The primary's value is kept
// unless it is empty and the duplicate has one, with three exceptions:
// description keeps the longer text, rating keeps the higher score, and the
// verification flag survives from either side.
func reconcileVenues(primary, duplicate *Venue) *Venue {
	merged := *primary

	merged.Description = longerString(primary.Description, duplicate.Description)
	merged.Rating = higherRating(primary.Rating, duplicate.Rating)
	merged.Verified = primary.Verified || duplicate.Verified

	if merged.PlaceID == nil {
		merged.PlaceID = duplicate.PlaceID
	}
	if merged.Street == nil {
		merged.Street = duplicate.Street
	}
	if merged.City == nil {
		merged.City = duplicate.City
	}
	if merged.State == nil {
		merged.State = duplicate.State
	}
	if merged.Zip == nil {
		merged.Zip = duplicate.Zip
	}
	if merged.Country == nil {
		merged.Country = duplicate.Country
	}
	if merged.Latitude == nil || merged.Longitude == nil {
		merged.Latitude = duplicate.Latitude
		merged.Longitude = duplicate.Longitude
	}
	if merged.Website == nil {
		merged.Website = duplicate.Website
	}
	if merged.ImageURL == nil {
		merged.ImageURL = duplicate.ImageURL
	}
	if merged.Capacity == nil {
		merged.Capacity = duplicate.Capacity
	}

	return &merged
}

func longerString(a, b *string) *string {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case len(*b) > len(*a):
		return b
	default:
		return a
	}
}

func higherRating(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *b > *a:
		return b
	default:
		return a
	}
}
