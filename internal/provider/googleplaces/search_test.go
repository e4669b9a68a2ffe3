package googleplaces

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCandidate(t *testing.T) {
	var place apiPlace
	place.PlaceID = "ChIJshowbox"
	place.Name = "The Showbox"
	place.FormattedAddress = "1426 1st Ave, Seattle, WA 98101"
	place.Rating = 4.6
	place.Geometry.Location.Lat = 47.6085
	place.Geometry.Location.Lng = -122.3394

	cand := toCandidate(place, "Seattle")

	assert.Equal(t, "The Showbox", cand.Name)
	require.NotNil(t, cand.PlaceID)
	assert.Equal(t, "ChIJshowbox", *cand.PlaceID)
	assert.Equal(t, "Seattle", *cand.City)
	require.NotNil(t, cand.Rating)
	assert.Equal(t, 4.6, *cand.Rating)
	assert.InDelta(t, 47.6085, *cand.Latitude, 1e-9)
}

func TestToCandidateZeroRatingOmitted(t *testing.T) {
	var place apiPlace
	place.PlaceID = "ChIJx"
	place.Name = "New Spot"

	cand := toCandidate(place, "Seattle")
	assert.Nil(t, cand.Rating)
}
