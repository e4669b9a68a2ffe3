package googleplaces

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/showgrid/showgrid-data/internal/provider"
)

// searchResponse is the Text Search response wrapper.
type searchResponse struct {
	Results       []apiPlace `json:"results"`
	NextPageToken string     `json:"next_page_token"`
	Status        string     `json:"status"`
	ErrorMessage  string     `json:"error_message"`
}

type apiPlace struct {
	PlaceID          string  `json:"place_id"`
	Name             string  `json:"name"`
	FormattedAddress string  `json:"formatted_address"`
	Rating           float64 `json:"rating"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// DiscoverVenues runs a Text Search for live-event venues in a city and
// converts the results to venue candidates. The place_id rides along as the
// catalog's unique external venue id.
func (c *Client) DiscoverVenues(ctx context.Context, city string) ([]provider.VenueCandidate, error) {
	query := fmt.Sprintf("live music venue in %s", city)

	var candidates []provider.VenueCandidate
	pageToken := ""

	for {
		params := url.Values{}
		params.Set("query", query)
		if pageToken != "" {
			params.Set("pagetoken", pageToken)
		}

		var resp searchResponse
		if err := c.get(ctx, "/textsearch/json", params, &resp); err != nil {
			return candidates, err
		}
		if resp.Status != "OK" && resp.Status != "ZERO_RESULTS" {
			return candidates, fmt.Errorf("Places text search status %s: %s", resp.Status, resp.ErrorMessage)
		}

		for _, place := range resp.Results {
			candidates = append(candidates, toCandidate(place, city))
		}

		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken

		// The token is not valid immediately.
		select {
		case <-time.After(pageTokenDelay):
		case <-ctx.Done():
			return candidates, ctx.Err()
		}
	}

	return candidates, nil
}

// toCandidate converts a raw place to a canonical venue candidate.
func toCandidate(place apiPlace, city string) provider.VenueCandidate {
	cand := provider.VenueCandidate{
		Name:    place.Name,
		PlaceID: strPtr(place.PlaceID),
		City:    strPtr(city),
		Street:  strPtr(place.FormattedAddress),
	}
	cand.Latitude = &place.Geometry.Location.Lat
	cand.Longitude = &place.Geometry.Location.Lng
	if place.Rating > 0 {
		r := place.Rating
		cand.Rating = &r
	}
	return cand
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
