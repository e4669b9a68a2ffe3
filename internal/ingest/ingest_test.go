package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showgrid/showgrid-data/internal/catalog"
	"github.com/showgrid/showgrid-data/internal/match"
	"github.com/showgrid/showgrid-data/internal/provider"
)

// fakeStore is an in-memory catalog good enough for ingestion: it satisfies
// the write surface here and the read surfaces the matchers declare.
type fakeStore struct {
	venues     []catalog.Venue
	events     []catalog.Event
	categories map[string]catalog.Category

	fillCalls     int
	upsertCatCall int
}

func newFakeStore() *fakeStore {
	return &fakeStore{categories: make(map[string]catalog.Category)}
}

func (f *fakeStore) CreateVenue(_ context.Context, v *catalog.Venue) error {
	v.ID = uuid.New()
	f.venues = append(f.venues, *v)
	return nil
}

func (f *fakeStore) FillVenueFields(_ context.Context, v *catalog.Venue) error {
	f.fillCalls++
	for i := range f.venues {
		if f.venues[i].ID == v.ID {
			if f.venues[i].PlaceID == nil {
				f.venues[i].PlaceID = v.PlaceID
			}
			if f.venues[i].City == nil {
				f.venues[i].City = v.City
			}
		}
	}
	return nil
}

func (f *fakeStore) CreateEvent(_ context.Context, e *catalog.Event) error {
	e.ID = uuid.New()
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeStore) UpdateEvent(_ context.Context, e *catalog.Event) error {
	for i := range f.events {
		if f.events[i].ID == e.ID {
			f.events[i] = *e
			return nil
		}
	}
	return catalog.ErrNotFound
}

func (f *fakeStore) UpsertCategory(_ context.Context, slug, name string) (*catalog.Category, error) {
	f.upsertCatCall++
	if cat, ok := f.categories[slug]; ok {
		return &cat, nil
	}
	cat := catalog.Category{ID: uuid.New(), Slug: slug, Name: name}
	f.categories[slug] = cat
	return &cat, nil
}

func (f *fakeStore) VenueByPlaceID(_ context.Context, placeID string) (*catalog.Venue, error) {
	for i := range f.venues {
		if f.venues[i].PlaceID != nil && *f.venues[i].PlaceID == placeID {
			return &f.venues[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) VenuesByCity(_ context.Context, city string) ([]catalog.Venue, error) {
	var out []catalog.Venue
	for _, v := range f.venues {
		if v.City != nil && *v.City == city {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeStore) VenuesInBox(_ context.Context, minLat, maxLat, minLng, maxLng float64) ([]catalog.Venue, error) {
	var out []catalog.Venue
	for _, v := range f.venues {
		if v.Latitude == nil || v.Longitude == nil {
			continue
		}
		if *v.Latitude >= minLat && *v.Latitude <= maxLat && *v.Longitude >= minLng && *v.Longitude <= maxLng {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeStore) VenueCity(_ context.Context, id uuid.UUID) (*string, error) {
	for _, v := range f.venues {
		if v.ID == id {
			return v.City, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) EventByExternalID(_ context.Context, source, externalID string) (*catalog.Event, error) {
	for i := range f.events {
		e := &f.events[i]
		if e.ExternalSource != nil && e.ExternalID != nil &&
			*e.ExternalSource == source && *e.ExternalID == externalID {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) EventsAtVenueBetween(_ context.Context, venueID uuid.UUID, from, to time.Time) ([]catalog.Event, error) {
	var out []catalog.Event
	for _, e := range f.events {
		if e.VenueID == venueID && !e.StartTime.Before(from) && !e.StartTime.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) EventsOnDayInCity(_ context.Context, _, _ time.Time, _ string) ([]catalog.Event, error) {
	return nil, nil
}

func newTestIngestor(store *fakeStore) *Ingestor {
	cfg := match.DefaultThresholds()
	return NewIngestor(store,
		match.NewVenueMatcher(store, cfg),
		match.NewEventMatcher(store, cfg),
		NewCategoryCache(store), nil)
}

func strPtr(s string) *string { return &s }

func sampleListing() provider.Listing {
	return provider.Listing{
		Venue: provider.VenueCandidate{
			Name: "The Showbox",
			City: strPtr("Seattle"),
		},
		Event: provider.EventCandidate{
			Title:          "The Black Tones",
			StartTime:      time.Date(2025, 6, 20, 20, 0, 0, 0, time.UTC),
			ExternalSource: strPtr("ticketmaster"),
			ExternalID:     strPtr("tm-1"),
			Category:       strPtr("Live Music"),
			Status:         catalog.EventStatusActive,
		},
	}
}

func TestIngestListingsCreatesVenueAndEvent(t *testing.T) {
	store := newFakeStore()
	ing := newTestIngestor(store)

	stats := ing.IngestListings(context.Background(), "ticketmaster", []provider.Listing{sampleListing()})

	assert.Equal(t, 1, stats.VenuesCreated)
	assert.Equal(t, 1, stats.EventsCreated)
	assert.Equal(t, 0, stats.EventsUpdated)
	assert.Empty(t, stats.Errors)

	require.Len(t, store.venues, 1)
	require.Len(t, store.events, 1)
	assert.Equal(t, store.venues[0].ID, store.events[0].VenueID)
	assert.NotNil(t, store.events[0].CategoryID)
	assert.Contains(t, store.categories, "live-music")
}

func TestIngestListingsResyncUpdates(t *testing.T) {
	store := newFakeStore()
	ing := newTestIngestor(store)

	listing := sampleListing()
	ing.IngestListings(context.Background(), "ticketmaster", []provider.Listing{listing})

	// Second pass: the venue matches by name+city, the event by external key.
	listing.Event.Title = "The Black Tones (21+)"
	stats := ing.IngestListings(context.Background(), "ticketmaster", []provider.Listing{listing})

	assert.Equal(t, 0, stats.VenuesCreated)
	assert.Equal(t, 0, stats.EventsCreated)
	assert.Equal(t, 1, stats.EventsUpdated)

	require.Len(t, store.venues, 1)
	require.Len(t, store.events, 1)
	assert.Equal(t, "The Black Tones (21+)", store.events[0].Title)
	assert.Equal(t, 1, store.fillCalls)
}

func TestIngestListingsAccumulatesItemErrors(t *testing.T) {
	store := newFakeStore()
	ing := newTestIngestor(store)

	bad := sampleListing()
	bad.Venue.Name = ""

	stats := ing.IngestListings(context.Background(), "ticketmaster",
		[]provider.Listing{bad, sampleListing()})

	// The bad listing is reported and the good one still lands.
	require.Len(t, stats.Errors, 1)
	assert.Contains(t, stats.Errors[0], "no name")
	assert.Equal(t, 1, stats.EventsCreated)
	require.Len(t, store.events, 1)
}

func TestIngestVenuesBackfills(t *testing.T) {
	store := newFakeStore()
	ing := newTestIngestor(store)

	first := provider.VenueCandidate{Name: "The Showbox", City: strPtr("Seattle")}
	stats := ing.IngestVenues(context.Background(), "google_places", []provider.VenueCandidate{first})
	assert.Equal(t, 1, stats.VenuesCreated)

	// Same venue again, now with a place id: matched and backfilled, not
	// created twice.
	second := provider.VenueCandidate{
		Name:    "Showbox Theater",
		City:    strPtr("Seattle"),
		PlaceID: strPtr("ChIJshowbox"),
	}
	stats = ing.IngestVenues(context.Background(), "google_places", []provider.VenueCandidate{second})
	assert.Equal(t, 0, stats.VenuesCreated)

	require.Len(t, store.venues, 1)
	require.NotNil(t, store.venues[0].PlaceID)
	assert.Equal(t, "ChIJshowbox", *store.venues[0].PlaceID)
}

func TestCategoryCacheMemoizes(t *testing.T) {
	store := newFakeStore()
	cache := NewCategoryCache(store)

	a, err := cache.LookupOrCreate(context.Background(), "Live Music")
	require.NoError(t, err)
	b, err := cache.LookupOrCreate(context.Background(), "Live Music!")
	require.NoError(t, err)

	// Same slug, one store round trip.
	assert.Equal(t, a, b)
	assert.Equal(t, 1, store.upsertCatCall)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Live Music", "live-music"},
		{"Food & Drink", "food-drink"},
		{"  Arts   ", "arts"},
		{"21+ Comedy Night", "21-comedy-night"},
		{"***", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in))
	}
}
