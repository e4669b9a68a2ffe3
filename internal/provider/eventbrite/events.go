package eventbrite

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/showgrid/showgrid-data/internal/provider"
)

// searchResponse is the /events/search/ response wrapper.
type searchResponse struct {
	Events     []apiEvent `json:"events"`
	Pagination struct {
		PageNumber   int  `json:"page_number"`
		HasMoreItems bool `json:"has_more_items"`
	} `json:"pagination"`
}

type apiEvent struct {
	ID   string `json:"id"`
	Name struct {
		Text string `json:"text"`
	} `json:"name"`
	Start struct {
		UTC string `json:"utc"`
	} `json:"start"`
	End struct {
		UTC string `json:"utc"`
	} `json:"end"`
	Status     string `json:"status"`
	CategoryID string `json:"category_id"`
	Logo       *struct {
		URL string `json:"url"`
	} `json:"logo"`
	Venue *apiVenue `json:"venue"`
}

type apiVenue struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address struct {
		Address1   string `json:"address_1"`
		City       string `json:"city"`
		Region     string `json:"region"`
		PostalCode string `json:"postal_code"`
		Country    string `json:"country"`
		Latitude   string `json:"latitude"`
		Longitude  string `json:"longitude"`
	} `json:"address"`
}

// FetchEvents pages through the event search for a city and converts the
// results to canonical listings.
func (c *Client) FetchEvents(ctx context.Context, city string) ([]provider.Listing, error) {
	var listings []provider.Listing

	for pageNum := 1; ; pageNum++ {
		params := url.Values{}
		params.Set("location.address", city)
		params.Set("expand", "venue")
		params.Set("page", strconv.Itoa(pageNum))

		var resp searchResponse
		if err := c.get(ctx, "/events/search/", params, &resp); err != nil {
			return listings, err
		}

		for _, ev := range resp.Events {
			listing, ok := toListing(ev)
			if !ok {
				c.logger.Debug("Skipping event without usable start time", "id", ev.ID)
				continue
			}
			listings = append(listings, listing)
		}

		if !resp.Pagination.HasMoreItems {
			break
		}
	}

	return listings, nil
}

// toListing converts a raw Eventbrite event to a canonical listing.
func toListing(ev apiEvent) (provider.Listing, bool) {
	start, err := time.Parse(time.RFC3339, ev.Start.UTC)
	if err != nil {
		return provider.Listing{}, false
	}

	source := "eventbrite"
	listing := provider.Listing{
		Event: provider.EventCandidate{
			Title:          ev.Name.Text,
			StartTime:      start,
			ExternalSource: &source,
			ExternalID:     strPtr(ev.ID),
			Status:         mapStatus(ev.Status),
		},
	}

	if end, err := time.Parse(time.RFC3339, ev.End.UTC); err == nil {
		listing.Event.EndTime = &end
	}

	if ev.Venue != nil {
		v := ev.Venue
		listing.Venue = provider.VenueCandidate{
			Name:      v.Name,
			Street:    strPtr(v.Address.Address1),
			City:      strPtr(v.Address.City),
			State:     strPtr(v.Address.Region),
			Zip:       strPtr(v.Address.PostalCode),
			Country:   strPtr(v.Address.Country),
			Latitude:  floatPtr(v.Address.Latitude),
			Longitude: floatPtr(v.Address.Longitude),
		}
	}

	return listing, true
}

func mapStatus(status string) string {
	if status == "canceled" || status == "cancelled" {
		return "cancelled"
	}
	return "active"
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func floatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
