package ticketmaster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() apiEvent {
	var ev apiEvent
	ev.ID = "tm-abc123"
	ev.Name = "The Black Tones"
	ev.Dates.Start.DateTime = "2025-06-20T20:00:00Z"
	ev.Dates.Status.Code = "onsale"

	var v apiVenue
	v.Name = "The Showbox"
	v.City.Name = "Seattle"
	v.State.StateCode = "WA"
	v.Country.CountryCode = "US"
	v.PostalCode = "98101"
	v.Address.Line1 = "1426 1st Ave"
	v.Location.Latitude = "47.6085"
	v.Location.Longitude = "-122.3394"
	ev.Embedded.Venues = []apiVenue{v}
	return ev
}

func TestToListing(t *testing.T) {
	listing, ok := toListing(sampleEvent())
	require.True(t, ok)

	assert.Equal(t, "The Black Tones", listing.Event.Title)
	assert.Equal(t, time.Date(2025, 6, 20, 20, 0, 0, 0, time.UTC), listing.Event.StartTime)
	assert.Equal(t, "ticketmaster", *listing.Event.ExternalSource)
	assert.Equal(t, "tm-abc123", *listing.Event.ExternalID)
	assert.Equal(t, "active", listing.Event.Status)
	assert.Nil(t, listing.Event.EndTime)

	assert.Equal(t, "The Showbox", listing.Venue.Name)
	assert.Equal(t, "Seattle", *listing.Venue.City)
	assert.Equal(t, "WA", *listing.Venue.State)
	require.NotNil(t, listing.Venue.Latitude)
	assert.InDelta(t, 47.6085, *listing.Venue.Latitude, 1e-9)
}

func TestToListingSkipsUnscheduled(t *testing.T) {
	ev := sampleEvent()
	ev.Dates.Start.DateTime = "" // Discovery TBA placeholder

	_, ok := toListing(ev)
	assert.False(t, ok)
}

func TestToListingCancelled(t *testing.T) {
	ev := sampleEvent()
	ev.Dates.Status.Code = "cancelled"

	listing, ok := toListing(ev)
	require.True(t, ok)
	assert.Equal(t, "cancelled", listing.Event.Status)
}

func TestToListingCategoryFromSegment(t *testing.T) {
	ev := sampleEvent()
	ev.Classifications = []struct {
		Segment struct {
			Name string `json:"name"`
		} `json:"segment"`
	}{{}}
	ev.Classifications[0].Segment.Name = "Music"

	listing, ok := toListing(ev)
	require.True(t, ok)
	require.NotNil(t, listing.Event.Category)
	assert.Equal(t, "Music", *listing.Event.Category)
}

func TestFloatPtr(t *testing.T) {
	assert.Nil(t, floatPtr(""))
	assert.Nil(t, floatPtr("not a number"))
	require.NotNil(t, floatPtr("-122.3394"))
	assert.InDelta(t, -122.3394, *floatPtr("-122.3394"), 1e-9)
}
