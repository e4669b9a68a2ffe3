package match

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/showgrid/showgrid-data/internal/catalog"
	"github.com/showgrid/showgrid-data/internal/provider"
)

// EventCatalog is the read surface the event matcher needs.
// catalog.Store satisfies it.
type EventCatalog interface {
	EventByExternalID(ctx context.Context, source, externalID string) (*catalog.Event, error)
	EventsAtVenueBetween(ctx context.Context, venueID uuid.UUID, from, to time.Time) ([]catalog.Event, error)
	EventsOnDayInCity(ctx context.Context, dayStart, dayEnd time.Time, city string) ([]catalog.Event, error)
	VenueCity(ctx context.Context, id uuid.UUID) (*string, error)
}

// EventMatch is a resolved event with the confidence and reason of the
// winning strategy.
type EventMatch struct {
	Event      *catalog.Event
	Confidence float64
	Reason     Reason
}

// EventMatcher decides whether a candidate event already exists in the
// catalog. Strategies run in strict priority order; the first hit wins.
type EventMatcher struct {
	events EventCatalog
	cfg    Thresholds
}

// NewEventMatcher creates an event matcher over the given catalog.
func NewEventMatcher(events EventCatalog, cfg Thresholds) *EventMatcher {
	return &EventMatcher{events: events, cfg: cfg}
}

// FindDuplicate returns the best catalog match for the candidate, or
// (nil, nil) when no strategy produces one.
func (m *EventMatcher) FindDuplicate(ctx context.Context, cand provider.EventCandidate) (*EventMatch, error) {
	// 1. Compound external key: the fast re-sync path.
	if cand.ExternalSource != nil && cand.ExternalID != nil {
		event, err := m.events.EventByExternalID(ctx, *cand.ExternalSource, *cand.ExternalID)
		if err != nil {
			return nil, fmt.Errorf("external id lookup: %w", err)
		}
		if event != nil {
			return &EventMatch{Event: event, Confidence: ConfidenceExternalID, Reason: ReasonSameExternalID}, nil
		}
	}

	candTitle := NormalizeEventTitle(cand.Title)

	// 2. Same venue, start within the closeness window, similar title. The
	// wider search window pre-filters; the strict closeness check decides.
	if cand.VenueID != uuid.Nil {
		from := cand.StartTime.Add(-m.cfg.EventSearchWindow)
		to := cand.StartTime.Add(m.cfg.EventSearchWindow)
		nearby, err := m.events.EventsAtVenueBetween(ctx, cand.VenueID, from, to)
		if err != nil {
			return nil, fmt.Errorf("venue window lookup: %w", err)
		}

		var best *catalog.Event
		bestSim := m.cfg.TitleSimilarity
		for i := range nearby {
			e := &nearby[i]
			if !DatesWithin(cand.StartTime, e.StartTime, m.cfg.EventCloseness) {
				continue
			}
			if sim := StringSimilarity(candTitle, NormalizeEventTitle(e.Title)); sim >= bestSim {
				best, bestSim = e, sim
			}
		}
		if best != nil {
			return &EventMatch{
				Event:      best,
				Confidence: ConfidenceSameVenueDateTitle,
				Reason:     ReasonSameVenueDateTitle,
			}, nil
		}
	}

	// 3. Cross-source weak match: similar title on the same UTC calendar day
	// in the same city, for when two sources name the same physical venue
	// differently.
	if cand.VenueID != uuid.Nil {
		city, err := m.events.VenueCity(ctx, cand.VenueID)
		if err != nil {
			return nil, fmt.Errorf("candidate venue city: %w", err)
		}
		if city != nil && *city != "" {
			dayStart := cand.StartTime.UTC().Truncate(24 * time.Hour)
			dayEnd := dayStart.Add(24 * time.Hour)
			sameDay, err := m.events.EventsOnDayInCity(ctx, dayStart, dayEnd, *city)
			if err != nil {
				return nil, fmt.Errorf("same day lookup: %w", err)
			}

			var best *catalog.Event
			bestSim := m.cfg.WeakTitleSimilarity
			for i := range sameDay {
				e := &sameDay[i]
				if sim := StringSimilarity(candTitle, NormalizeEventTitle(e.Title)); sim >= bestSim {
					best, bestSim = e, sim
				}
			}
			if best != nil {
				return &EventMatch{
					Event:      best,
					Confidence: ConfidenceSimilarTitleDayCity,
					Reason:     ReasonSimilarTitleDayCity,
				}, nil
			}
		}
	}

	return nil, nil
}
