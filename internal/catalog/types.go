// Package catalog provides the canonical venue/event store backed by
// Postgres. All ingestion sources resolve into these rows; the matchers in
// internal/match read them through the interfaces they declare.
package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a venue or event id does not resolve.
// Callers distinguish it from connectivity faults with errors.Is.
var ErrNotFound = errors.New("not found")

// Event statuses.
const (
	EventStatusActive    = "active"
	EventStatusCancelled = "cancelled"
)

// Venue is a canonical venue row. Optional columns are pointers so that
// absent values survive the round trip as SQL NULL.
type Venue struct {
	ID          uuid.UUID
	Name        string
	Street      *string
	City        *string
	State       *string
	Zip         *string
	Country     *string
	Latitude    *float64
	Longitude   *float64
	PlaceID     *string // places-provider id, unique across the catalog when present
	Description *string
	Website     *string
	ImageURL    *string
	Rating      *float64
	Capacity    *int
	Verified    bool
	Source      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasCoordinates reports whether the venue carries a usable lat/lng pair.
func (v *Venue) HasCoordinates() bool {
	return v.Latitude != nil && v.Longitude != nil
}

// Event is a canonical event row. An event always belongs to exactly one
// venue. (ExternalSource, ExternalID) is unique together when both are set;
// locally authored events leave both nil.
type Event struct {
	ID             uuid.UUID
	Title          string
	StartTime      time.Time
	EndTime        *time.Time
	VenueID        uuid.UUID
	CategoryID     *uuid.UUID
	ExternalSource *string
	ExternalID     *string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EventWithCity is an event joined with its venue's city, as loaded by the
// batch duplicate scanner.
type EventWithCity struct {
	Event
	City *string
}

// Category is a minimal event category row, keyed by slug.
type Category struct {
	ID   uuid.UUID
	Slug string
	Name string
}

// Sync log statuses.
const (
	SyncStatusSuccess = "success"
	SyncStatusPartial = "partial"
	SyncStatusFailed  = "failed"
)

// SyncLogEntry is one append-only audit row per source per orchestration
// run. Entries are never mutated after insert.
type SyncLogEntry struct {
	ID            uuid.UUID
	Source        string
	Status        string
	EventsCreated int
	EventsUpdated int
	VenuesCreated int
	Errors        []string
	Duration      time.Duration
	StartedAt     time.Time
	CompletedAt   time.Time
}
