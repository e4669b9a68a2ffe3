// Package ingest resolves canonical candidates from the providers against
// the catalog and writes the survivors. One Ingestor serves all sources;
// each listing goes venue-first so the event candidate carries a resolved
// venue id into the event matcher.
package ingest

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/showgrid/showgrid-data/internal/catalog"
	"github.com/showgrid/showgrid-data/internal/match"
	"github.com/showgrid/showgrid-data/internal/orchestrator"
	"github.com/showgrid/showgrid-data/internal/provider"
)

// Catalog is the write surface ingestion needs. catalog.Store satisfies it.
type Catalog interface {
	CreateVenue(ctx context.Context, v *catalog.Venue) error
	FillVenueFields(ctx context.Context, v *catalog.Venue) error
	CreateEvent(ctx context.Context, e *catalog.Event) error
	UpdateEvent(ctx context.Context, e *catalog.Event) error
	UpsertCategory(ctx context.Context, slug, name string) (*catalog.Category, error)
}

// Ingestor resolves candidates and upserts them. Matching is delegated to
// the matchers; the ingestor only decides create vs update from their
// verdicts.
type Ingestor struct {
	store      Catalog
	venues     *match.VenueMatcher
	events     *match.EventMatcher
	categories *CategoryCache
	logger     *slog.Logger
}

// NewIngestor creates an ingestor. The category cache is injected so
// concurrent source jobs share one consistent slug→id view per run.
func NewIngestor(store Catalog, venues *match.VenueMatcher, events *match.EventMatcher, categories *CategoryCache, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{
		store:      store,
		venues:     venues,
		events:     events,
		categories: categories,
		logger:     logger,
	}
}

// IngestListings resolves and upserts a batch of event listings from one
// source. Item failures accumulate in the returned stats; the batch always
// runs to completion.
func (i *Ingestor) IngestListings(ctx context.Context, source string, listings []provider.Listing) orchestrator.SourceStats {
	var stats orchestrator.SourceStats

	for _, listing := range listings {
		venueID, venueCreated, err := i.resolveVenue(ctx, source, listing.Venue)
		if err != nil {
			stats.AddErrorf("venue %q: %v", listing.Venue.Name, err)
			continue
		}
		if venueCreated {
			stats.VenuesCreated++
		}

		event := listing.Event
		event.VenueID = venueID

		created, err := i.upsertEvent(ctx, source, event)
		if err != nil {
			stats.AddErrorf("event %q: %v", event.Title, err)
			continue
		}
		if created {
			stats.EventsCreated++
		} else {
			stats.EventsUpdated++
		}
	}

	return stats
}

// IngestVenues resolves and upserts venue candidates from a discovery
// source. Already-known venues get their blank metadata backfilled.
func (i *Ingestor) IngestVenues(ctx context.Context, source string, cands []provider.VenueCandidate) orchestrator.SourceStats {
	var stats orchestrator.SourceStats

	for _, cand := range cands {
		_, created, err := i.resolveVenue(ctx, source, cand)
		if err != nil {
			stats.AddErrorf("venue %q: %v", cand.Name, err)
			continue
		}
		if created {
			stats.VenuesCreated++
		}
	}

	return stats
}

// resolveVenue matches the candidate against the catalog, backfilling a hit
// and creating a venue on a miss. Returns the venue id and whether a new
// row was created.
func (i *Ingestor) resolveVenue(ctx context.Context, source string, cand provider.VenueCandidate) (uuid.UUID, bool, error) {
	if cand.Name == "" {
		return uuid.Nil, false, fmt.Errorf("candidate has no name")
	}

	m, err := i.venues.FindDuplicate(ctx, cand)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("match venue: %w", err)
	}
	if m != nil {
		fill := venueFromCandidate(cand, source)
		fill.ID = m.Venue.ID
		if err := i.store.FillVenueFields(ctx, fill); err != nil {
			return uuid.Nil, false, err
		}
		i.logger.Debug("Venue matched",
			"name", cand.Name, "venue_id", m.Venue.ID,
			"reason", string(m.Reason), "confidence", m.Confidence)
		return m.Venue.ID, false, nil
	}

	venue := venueFromCandidate(cand, source)
	if err := i.store.CreateVenue(ctx, venue); err != nil {
		return uuid.Nil, false, err
	}
	i.logger.Debug("Venue created", "name", venue.Name, "venue_id", venue.ID)
	return venue.ID, true, nil
}

// upsertEvent matches the candidate and either refreshes the matched row or
// creates a new one. Returns true when a row was created.
func (i *Ingestor) upsertEvent(ctx context.Context, source string, cand provider.EventCandidate) (bool, error) {
	var categoryID *uuid.UUID
	if cand.Category != nil {
		id, err := i.categories.LookupOrCreate(ctx, *cand.Category)
		if err != nil {
			return false, fmt.Errorf("resolve category: %w", err)
		}
		categoryID = &id
	}

	m, err := i.events.FindDuplicate(ctx, cand)
	if err != nil {
		return false, fmt.Errorf("match event: %w", err)
	}

	if m != nil {
		event := m.Event
		event.Title = cand.Title
		event.StartTime = cand.StartTime
		event.EndTime = cand.EndTime
		if categoryID != nil {
			event.CategoryID = categoryID
		}
		event.ExternalSource = cand.ExternalSource
		event.ExternalID = cand.ExternalID
		if cand.Status != "" {
			event.Status = cand.Status
		}
		if err := i.store.UpdateEvent(ctx, event); err != nil {
			return false, err
		}
		i.logger.Debug("Event matched",
			"title", cand.Title, "event_id", event.ID,
			"reason", string(m.Reason), "confidence", m.Confidence)
		return false, nil
	}

	event := &catalog.Event{
		Title:          cand.Title,
		StartTime:      cand.StartTime,
		EndTime:        cand.EndTime,
		VenueID:        cand.VenueID,
		CategoryID:     categoryID,
		ExternalSource: cand.ExternalSource,
		ExternalID:     cand.ExternalID,
		Status:         cand.Status,
	}
	if err := i.store.CreateEvent(ctx, event); err != nil {
		return false, err
	}
	return true, nil
}

// venueFromCandidate maps a candidate onto a catalog row shape.
func venueFromCandidate(cand provider.VenueCandidate, source string) *catalog.Venue {
	return &catalog.Venue{
		Name:        cand.Name,
		Street:      cand.Street,
		City:        cand.City,
		State:       cand.State,
		Zip:         cand.Zip,
		Country:     cand.Country,
		Latitude:    cand.Latitude,
		Longitude:   cand.Longitude,
		PlaceID:     cand.PlaceID,
		Description: cand.Description,
		Website:     cand.Website,
		ImageURL:    cand.ImageURL,
		Rating:      cand.Rating,
		Capacity:    cand.Capacity,
		Source:      source,
	}
}
