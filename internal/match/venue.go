package match

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/showgrid/showgrid-data/internal/catalog"
	"github.com/showgrid/showgrid-data/internal/provider"
)

// VenueCatalog is the read surface the venue matcher needs.
// catalog.Store satisfies it.
type VenueCatalog interface {
	VenueByPlaceID(ctx context.Context, placeID string) (*catalog.Venue, error)
	VenuesByCity(ctx context.Context, city string) ([]catalog.Venue, error)
	VenuesInBox(ctx context.Context, minLat, maxLat, minLng, maxLng float64) ([]catalog.Venue, error)
	VenueCity(ctx context.Context, id uuid.UUID) (*string, error)
}

// VenueMatch is a resolved venue with the confidence and reason of the
// winning strategy.
type VenueMatch struct {
	Venue      *catalog.Venue
	Confidence float64
	Reason     Reason
}

// VenueMatcher decides whether a candidate venue already exists in the
// catalog. Strategies run in strict priority order; the first hit wins.
type VenueMatcher struct {
	venues VenueCatalog
	cfg    Thresholds
}

// NewVenueMatcher creates a venue matcher over the given catalog.
func NewVenueMatcher(venues VenueCatalog, cfg Thresholds) *VenueMatcher {
	return &VenueMatcher{venues: venues, cfg: cfg}
}

// FindDuplicate returns the best catalog match for the candidate. A
// (nil, nil) return is the normal "create a new venue" outcome, distinct
// from a store fault.
func (m *VenueMatcher) FindDuplicate(ctx context.Context, cand provider.VenueCandidate) (*VenueMatch, error) {
	// 1. Provider id is unique across the catalog: an exact hit is certain.
	if cand.PlaceID != nil && *cand.PlaceID != "" {
		venue, err := m.venues.VenueByPlaceID(ctx, *cand.PlaceID)
		if err != nil {
			return nil, fmt.Errorf("place id lookup: %w", err)
		}
		if venue != nil {
			return &VenueMatch{Venue: venue, Confidence: ConfidenceExternalID, Reason: ReasonExternalID}, nil
		}
	}

	candName := NormalizeVenueName(cand.Name)

	var cityVenues []catalog.Venue
	if cand.City != nil && *cand.City != "" {
		var err error
		cityVenues, err = m.venues.VenuesByCity(ctx, *cand.City)
		if err != nil {
			return nil, fmt.Errorf("city lookup: %w", err)
		}

		// 2. Exact normalized-name equality within the same city.
		for i := range cityVenues {
			if NormalizeVenueName(cityVenues[i].Name) == candName {
				return &VenueMatch{
					Venue:      &cityVenues[i],
					Confidence: ConfidenceExactNameSameCity,
					Reason:     ReasonExactNameSameCity,
				}, nil
			}
		}

		// 3. Fuzzy name similarity within the same city.
		if best := bestBySimilarity(cityVenues, candName, m.cfg.VenueNameSimilarity); best != nil {
			return &VenueMatch{
				Venue:      best,
				Confidence: ConfidenceSimilarNameCity,
				Reason:     ReasonSimilarNameCity,
			}, nil
		}
	}

	// 4. Fuzzy name similarity within walking distance. A cheap bounding box
	// narrows the catalog before the exact Haversine check.
	if cand.HasCoordinates() {
		minLat, maxLat, minLng, maxLng := boundingBox(*cand.Latitude, *cand.Longitude, m.cfg.VenueProximityKm)
		nearby, err := m.venues.VenuesInBox(ctx, minLat, maxLat, minLng, maxLng)
		if err != nil {
			return nil, fmt.Errorf("proximity lookup: %w", err)
		}

		var best *catalog.Venue
		bestSim := m.cfg.VenueNameSimilarity
		for i := range nearby {
			v := &nearby[i]
			if !v.HasCoordinates() {
				continue
			}
			if HaversineKm(*cand.Latitude, *cand.Longitude, *v.Latitude, *v.Longitude) > m.cfg.VenueProximityKm {
				continue
			}
			if sim := StringSimilarity(candName, NormalizeVenueName(v.Name)); sim >= bestSim {
				best, bestSim = v, sim
			}
		}
		if best != nil {
			return &VenueMatch{
				Venue:      best,
				Confidence: ConfidenceSimilarNameNearby,
				Reason:     ReasonSimilarNameNearby,
			}, nil
		}
	}

	return nil, nil
}

// bestBySimilarity returns the venue with the highest normalized-name
// similarity at or above threshold, or nil.
func bestBySimilarity(venues []catalog.Venue, candName string, threshold float64) *catalog.Venue {
	var best *catalog.Venue
	bestSim := threshold
	for i := range venues {
		if sim := StringSimilarity(candName, NormalizeVenueName(venues[i].Name)); sim >= bestSim {
			best, bestSim = &venues[i], sim
		}
	}
	return best
}

// boundingBox returns a lat/lng box extending radiusKm from the point in
// each direction. Longitude degrees shrink with latitude.
func boundingBox(lat, lng, radiusKm float64) (minLat, maxLat, minLng, maxLng float64) {
	latDelta := radiusKm / 110.574
	lngDelta := radiusKm / (111.320 * math.Cos(radians(lat)))
	if lngDelta < 0 {
		lngDelta = -lngDelta
	}
	return lat - latDelta, lat + latDelta, lng - lngDelta, lng + lngDelta
}
