package ticketmaster

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/showgrid/showgrid-data/internal/provider"
)

// apiEvent is the raw Discovery event shape, reduced to the fields the
// catalog cares about.
type apiEvent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Dates struct {
		Start struct {
			DateTime string `json:"dateTime"`
		} `json:"start"`
		End struct {
			DateTime string `json:"dateTime"`
		} `json:"end"`
		Status struct {
			Code string `json:"code"`
		} `json:"status"`
	} `json:"dates"`
	Classifications []struct {
		Segment struct {
			Name string `json:"name"`
		} `json:"segment"`
	} `json:"classifications"`
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
	Embedded struct {
		Venues []apiVenue `json:"venues"`
	} `json:"_embedded"`
}

type apiVenue struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	City struct {
		Name string `json:"name"`
	} `json:"city"`
	State struct {
		StateCode string `json:"stateCode"`
	} `json:"state"`
	Country struct {
		CountryCode string `json:"countryCode"`
	} `json:"country"`
	PostalCode string `json:"postalCode"`
	Address    struct {
		Line1 string `json:"line1"`
	} `json:"address"`
	Location struct {
		Latitude  string `json:"latitude"`
		Longitude string `json:"longitude"`
	} `json:"location"`
}

const pageSize = 100

// FetchEvents pages through every Discovery event in a city and converts
// them to canonical listings. Events without a parseable start time are
// skipped (Discovery uses TBA placeholders for unscheduled dates).
func (c *Client) FetchEvents(ctx context.Context, city string) ([]provider.Listing, error) {
	var listings []provider.Listing

	for pageNum := 0; ; pageNum++ {
		params := url.Values{}
		params.Set("city", city)
		params.Set("size", strconv.Itoa(pageSize))
		params.Set("page", strconv.Itoa(pageNum))
		params.Set("sort", "date,asc")

		var resp eventsResponse
		if err := c.get(ctx, "/events.json", params, &resp); err != nil {
			return listings, err
		}

		for _, ev := range resp.Embedded.Events {
			listing, ok := toListing(ev)
			if !ok {
				c.logger.Debug("Skipping event without usable start time", "id", ev.ID, "name", ev.Name)
				continue
			}
			listings = append(listings, listing)
		}

		if pageNum+1 >= resp.Page.TotalPages {
			break
		}
	}

	return listings, nil
}

// toListing converts a raw Discovery event to a canonical listing.
func toListing(ev apiEvent) (provider.Listing, bool) {
	start, err := time.Parse(time.RFC3339, ev.Dates.Start.DateTime)
	if err != nil {
		return provider.Listing{}, false
	}

	source := "ticketmaster"
	listing := provider.Listing{
		Event: provider.EventCandidate{
			Title:          ev.Name,
			StartTime:      start,
			ExternalSource: &source,
			ExternalID:     strPtr(ev.ID),
			Status:         mapStatus(ev.Dates.Status.Code),
		},
	}

	if end, err := time.Parse(time.RFC3339, ev.Dates.End.DateTime); err == nil {
		listing.Event.EndTime = &end
	}
	if len(ev.Classifications) > 0 && ev.Classifications[0].Segment.Name != "" {
		listing.Event.Category = strPtr(ev.Classifications[0].Segment.Name)
	}

	if len(ev.Embedded.Venues) > 0 {
		v := ev.Embedded.Venues[0]
		listing.Venue = provider.VenueCandidate{
			Name:    v.Name,
			Street:  strPtr(v.Address.Line1),
			City:    strPtr(v.City.Name),
			State:   strPtr(v.State.StateCode),
			Zip:     strPtr(v.PostalCode),
			Country: strPtr(v.Country.CountryCode),
			Website: strPtr(v.URL),
		}
		listing.Venue.Latitude = floatPtr(v.Location.Latitude)
		listing.Venue.Longitude = floatPtr(v.Location.Longitude)
	}

	return listing, true
}

func mapStatus(code string) string {
	if code == "cancelled" {
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
