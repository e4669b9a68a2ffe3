// Package provider defines the canonical candidate shapes every source
// adapter normalizes into. Providers output these, the ingestion layer
// resolves them against the catalog and writes the survivors. Adding a new
// provider means producing these types; the matchers and catalog schema
// never change.
package provider

import (
	"time"

	"github.com/google/uuid"
)

// VenueCandidate is a transient, not-yet-persisted venue description
// awaiting identity resolution.
type VenueCandidate struct {
	Name        string
	Street      *string
	City        *string
	State       *string
	Zip         *string
	Country     *string
	Latitude    *float64
	Longitude   *float64
	PlaceID     *string // places-provider id, the strongest identity signal
	Description *string
	Website     *string
	ImageURL    *string
	Rating      *float64
	Capacity    *int
}

// HasCoordinates reports whether the candidate carries a usable lat/lng pair.
func (c *VenueCandidate) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// EventCandidate is a transient event description awaiting identity
// resolution. VenueID is filled in once the owning venue has been resolved.
type EventCandidate struct {
	Title          string
	StartTime      time.Time
	EndTime        *time.Time
	VenueID        uuid.UUID
	Category       *string
	ExternalSource *string
	ExternalID     *string
	Status         string
}

// Listing pairs an event candidate with the venue the provider attached to
// it. Sources emit listings; ingestion resolves the venue first and then the
// event.
type Listing struct {
	Event EventCandidate
	Venue VenueCandidate
}
