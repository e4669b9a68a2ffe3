package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func TestReconcileVenues(t *testing.T) {
	primaryID := uuid.New()

	tests := []struct {
		name      string
		primary   Venue
		duplicate Venue
		check     func(t *testing.T, merged *Venue)
	}{
		{
			name:      "identity and name always come from the primary",
			primary:   Venue{ID: primaryID, Name: "The Showbox"},
			duplicate: Venue{ID: uuid.New(), Name: "Showbox Theater"},
			check: func(t *testing.T, merged *Venue) {
				assert.Equal(t, primaryID, merged.ID)
				assert.Equal(t, "The Showbox", merged.Name)
			},
		},
		{
			name:      "longer description wins",
			primary:   Venue{ID: primaryID, Name: "A", Description: strPtr("short")},
			duplicate: Venue{Name: "B", Description: strPtr("a much longer description")},
			check: func(t *testing.T, merged *Venue) {
				assert.Equal(t, "a much longer description", *merged.Description)
			},
		},
		{
			name:      "primary description kept on equal length",
			primary:   Venue{ID: primaryID, Name: "A", Description: strPtr("aaaa")},
			duplicate: Venue{Name: "B", Description: strPtr("bbbb")},
			check: func(t *testing.T, merged *Venue) {
				assert.Equal(t, "aaaa", *merged.Description)
			},
		},
		{
			name:      "higher rating wins",
			primary:   Venue{ID: primaryID, Name: "A", Rating: floatPtr(3.9)},
			duplicate: Venue{Name: "B", Rating: floatPtr(4.6)},
			check: func(t *testing.T, merged *Venue) {
				assert.Equal(t, 4.6, *merged.Rating)
			},
		},
		{
			name:      "verification survives from either side",
			primary:   Venue{ID: primaryID, Name: "A", Verified: false},
			duplicate: Venue{Name: "B", Verified: true},
			check: func(t *testing.T, merged *Venue) {
				assert.True(t, merged.Verified)
			},
		},
		{
			name:      "place id adopted when primary has none",
			primary:   Venue{ID: primaryID, Name: "A"},
			duplicate: Venue{Name: "B", PlaceID: strPtr("ChIJdup")},
			check: func(t *testing.T, merged *Venue) {
				assert.Equal(t, "ChIJdup", *merged.PlaceID)
			},
		},
		{
			name:      "primary place id never replaced",
			primary:   Venue{ID: primaryID, Name: "A", PlaceID: strPtr("ChIJprimary")},
			duplicate: Venue{Name: "B", PlaceID: strPtr("ChIJdup")},
			check: func(t *testing.T, merged *Venue) {
				assert.Equal(t, "ChIJprimary", *merged.PlaceID)
			},
		},
		{
			name:    "blanks backfilled from the duplicate",
			primary: Venue{ID: primaryID, Name: "A", City: strPtr("Seattle")},
			duplicate: Venue{
				Name: "B", Street: strPtr("2nd Ave"), City: strPtr("Tacoma"),
				Website: strPtr("https://example.com"), Capacity: intPtr(1150),
				Latitude: floatPtr(47.6), Longitude: floatPtr(-122.3),
			},
			check: func(t *testing.T, merged *Venue) {
				assert.Equal(t, "2nd Ave", *merged.Street)
				assert.Equal(t, "Seattle", *merged.City) // present value not overwritten
				assert.Equal(t, "https://example.com", *merged.Website)
				assert.Equal(t, 1150, *merged.Capacity)
				assert.Equal(t, 47.6, *merged.Latitude)
				assert.Equal(t, -122.3, *merged.Longitude)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged := reconcileVenues(&tt.primary, &tt.duplicate)
			tt.check(t, merged)

			// Reconciliation is pure; inputs must not be mutated.
			assert.Equal(t, primaryID, tt.primary.ID)
		})
	}
}

func TestLongerString(t *testing.T) {
	assert.Nil(t, longerString(nil, nil))
	assert.Equal(t, "x", *longerString(strPtr("x"), nil))
	assert.Equal(t, "x", *longerString(nil, strPtr("x")))
	assert.Equal(t, "longer", *longerString(strPtr("abc"), strPtr("longer")))
}

func TestHigherRating(t *testing.T) {
	assert.Nil(t, higherRating(nil, nil))
	assert.Equal(t, 4.0, *higherRating(floatPtr(4.0), nil))
	assert.Equal(t, 4.0, *higherRating(nil, floatPtr(4.0)))
	assert.Equal(t, 4.5, *higherRating(floatPtr(4.5), floatPtr(4.0)))
	assert.Equal(t, 4.5, *higherRating(floatPtr(4.0), floatPtr(4.5)))
}
