package ingest

import (
	"context"

	"github.com/showgrid/showgrid-data/internal/config"
	"github.com/showgrid/showgrid-data/internal/orchestrator"
	"github.com/showgrid/showgrid-data/internal/provider/eventbrite"
	"github.com/showgrid/showgrid-data/internal/provider/googleplaces"
	"github.com/showgrid/showgrid-data/internal/provider/ticketmaster"
)

// TicketmasterSource syncs Discovery API events for the configured cities.
type TicketmasterSource struct {
	client   *ticketmaster.Client
	ingestor *Ingestor
	cities   []string
}

// NewTicketmasterSource wires the source. client may be nil when no API key
// is configured; the orchestrator will then skip the source.
func NewTicketmasterSource(client *ticketmaster.Client, ingestor *Ingestor, cities []string) *TicketmasterSource {
	return &TicketmasterSource{client: client, ingestor: ingestor, cities: cities}
}

func (s *TicketmasterSource) Name() string     { return config.SourceTicketmaster }
func (s *TicketmasterSource) Configured() bool { return s.client != nil }

// Sync fetches and ingests every configured city sequentially. A city that
// fails to fetch contributes an error and the job moves on.
func (s *TicketmasterSource) Sync(ctx context.Context) (orchestrator.SourceStats, error) {
	var stats orchestrator.SourceStats
	for _, city := range s.cities {
		listings, err := s.client.FetchEvents(ctx, city)
		if err != nil {
			stats.AddErrorf("fetch %s: %v", city, err)
			continue
		}
		stats.Add(s.ingestor.IngestListings(ctx, config.SourceTicketmaster, listings))
	}
	return stats, nil
}

// EventbriteSource syncs Eventbrite search results for the configured cities.
type EventbriteSource struct {
	client   *eventbrite.Client
	ingestor *Ingestor
	cities   []string
}

// NewEventbriteSource wires the source. client may be nil when no OAuth
// token is configured.
func NewEventbriteSource(client *eventbrite.Client, ingestor *Ingestor, cities []string) *EventbriteSource {
	return &EventbriteSource{client: client, ingestor: ingestor, cities: cities}
}

func (s *EventbriteSource) Name() string     { return config.SourceEventbrite }
func (s *EventbriteSource) Configured() bool { return s.client != nil }

func (s *EventbriteSource) Sync(ctx context.Context) (orchestrator.SourceStats, error) {
	var stats orchestrator.SourceStats
	for _, city := range s.cities {
		listings, err := s.client.FetchEvents(ctx, city)
		if err != nil {
			stats.AddErrorf("fetch %s: %v", city, err)
			continue
		}
		stats.Add(s.ingestor.IngestListings(ctx, config.SourceEventbrite, listings))
	}
	return stats, nil
}

// PlacesSource discovers venues through the Google Places Text Search API.
type PlacesSource struct {
	client   *googleplaces.Client
	ingestor *Ingestor
	cities   []string
}

// NewPlacesSource wires the discovery source. client may be nil when no API
// key is configured.
func NewPlacesSource(client *googleplaces.Client, ingestor *Ingestor, cities []string) *PlacesSource {
	return &PlacesSource{client: client, ingestor: ingestor, cities: cities}
}

func (s *PlacesSource) Name() string     { return config.SourceGooglePlaces }
func (s *PlacesSource) Configured() bool { return s.client != nil }

func (s *PlacesSource) Sync(ctx context.Context) (orchestrator.SourceStats, error) {
	var stats orchestrator.SourceStats
	for _, city := range s.cities {
		cands, err := s.client.DiscoverVenues(ctx, city)
		if err != nil {
			stats.AddErrorf("discover %s: %v", city, err)
			continue
		}
		stats.Add(s.ingestor.IngestVenues(ctx, config.SourceGooglePlaces, cands))
	}
	return stats, nil
}
