package match

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/showgrid/showgrid-data/internal/catalog"
	"github.com/showgrid/showgrid-data/internal/provider"
)

// fakeEventCatalog serves canned events to the matcher.
type fakeEventCatalog struct {
	byExternalID map[string]*catalog.Event // keyed source + "/" + id
	atVenue      []catalog.Event
	onDay        []catalog.Event
	city         *string
}

func (f *fakeEventCatalog) EventByExternalID(_ context.Context, source, externalID string) (*catalog.Event, error) {
	return f.byExternalID[source+"/"+externalID], nil
}

func (f *fakeEventCatalog) EventsAtVenueBetween(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]catalog.Event, error) {
	return f.atVenue, nil
}

func (f *fakeEventCatalog) EventsOnDayInCity(_ context.Context, _, _ time.Time, _ string) ([]catalog.Event, error) {
	return f.onDay, nil
}

func (f *fakeEventCatalog) VenueCity(_ context.Context, _ uuid.UUID) (*string, error) {
	return f.city, nil
}

func TestEventMatcherExternalIDWins(t *testing.T) {
	stored := &catalog.Event{
		ID:             uuid.New(),
		Title:          "Totally Renamed Show",
		ExternalSource: strPtr("ticketmaster"),
		ExternalID:     strPtr("tm-123"),
	}
	cat := &fakeEventCatalog{
		byExternalID: map[string]*catalog.Event{"ticketmaster/tm-123": stored},
	}
	m := NewEventMatcher(cat, DefaultThresholds())

	got, err := m.FindDuplicate(context.Background(), provider.EventCandidate{
		Title:          "The Black Tones",
		StartTime:      time.Date(2025, 6, 20, 20, 0, 0, 0, time.UTC),
		VenueID:        uuid.New(),
		ExternalSource: strPtr("ticketmaster"),
		ExternalID:     strPtr("tm-123"),
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stored.ID, got.Event.ID)
	assert.Equal(t, ConfidenceExternalID, got.Confidence)
	assert.Equal(t, ReasonSameExternalID, got.Reason)
}

func TestEventMatcherSameVenueDateTitle(t *testing.T) {
	venueID := uuid.New()
	start := time.Date(2025, 6, 20, 20, 0, 0, 0, time.UTC)
	stored := catalog.Event{
		ID:        uuid.New(),
		Title:     "Black Tones",
		StartTime: start.Add(time.Hour),
		VenueID:   venueID,
	}
	cat := &fakeEventCatalog{atVenue: []catalog.Event{stored}}
	m := NewEventMatcher(cat, DefaultThresholds())

	// Same venue, one hour apart, titles differ only by a leading article.
	got, err := m.FindDuplicate(context.Background(), provider.EventCandidate{
		Title:     "The Black Tones",
		StartTime: start,
		VenueID:   venueID,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stored.ID, got.Event.ID)
	assert.Equal(t, ConfidenceSameVenueDateTitle, got.Confidence)
	assert.Equal(t, ReasonSameVenueDateTitle, got.Reason)
}

func TestEventMatcherClosenessIsStrict(t *testing.T) {
	venueID := uuid.New()
	start := time.Date(2025, 6, 20, 20, 0, 0, 0, time.UTC)

	// Inside the search window but outside the closeness window, and no
	// venue city for the weak fallback: no match.
	stored := catalog.Event{
		ID:        uuid.New(),
		Title:     "The Black Tones",
		StartTime: start.Add(150 * time.Minute),
		VenueID:   venueID,
	}
	cat := &fakeEventCatalog{atVenue: []catalog.Event{stored}}
	m := NewEventMatcher(cat, DefaultThresholds())

	got, err := m.FindDuplicate(context.Background(), provider.EventCandidate{
		Title:     "The Black Tones",
		StartTime: start,
		VenueID:   venueID,
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEventMatcherWeakCrossSource(t *testing.T) {
	start := time.Date(2025, 6, 20, 20, 0, 0, 0, time.UTC)

	// Listed at a different venue record for the same city, too far apart in
	// start time for the strong strategy.
	stored := catalog.Event{
		ID:        uuid.New(),
		Title:     "Black Tones",
		StartTime: start.Add(150 * time.Minute),
		VenueID:   uuid.New(),
	}
	cat := &fakeEventCatalog{
		onDay: []catalog.Event{stored},
		city:  strPtr("Seattle"),
	}
	m := NewEventMatcher(cat, DefaultThresholds())

	got, err := m.FindDuplicate(context.Background(), provider.EventCandidate{
		Title:     "The Black Tones",
		StartTime: start,
		VenueID:   uuid.New(),
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stored.ID, got.Event.ID)
	assert.Equal(t, ConfidenceSimilarTitleDayCity, got.Confidence)
	assert.Equal(t, ReasonSimilarTitleDayCity, got.Reason)
}

func TestEventMatcherNoMatch(t *testing.T) {
	cat := &fakeEventCatalog{
		atVenue: []catalog.Event{{
			ID:        uuid.New(),
			Title:     "Completely Unrelated Gala",
			StartTime: time.Date(2025, 6, 20, 20, 30, 0, 0, time.UTC),
		}},
		city: strPtr("Seattle"),
	}
	m := NewEventMatcher(cat, DefaultThresholds())

	got, err := m.FindDuplicate(context.Background(), provider.EventCandidate{
		Title:     "The Black Tones",
		StartTime: time.Date(2025, 6, 20, 20, 0, 0, 0, time.UTC),
		VenueID:   uuid.New(),
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}
