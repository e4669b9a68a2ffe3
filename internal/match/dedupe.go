package match

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/showgrid/showgrid-data/internal/catalog"
)

// ScannerCatalog is the read surface the batch duplicate scanner needs.
// catalog.Store satisfies it.
type ScannerCatalog interface {
	AllEventsWithCity(ctx context.Context) ([]catalog.EventWithCity, error)
}

// DuplicatePair is two catalog events the scanner believes denote the same
// real-world event. Pairs feed a human review queue; nothing is merged
// automatically.
type DuplicatePair struct {
	A          *catalog.Event
	B          *catalog.Event
	Confidence float64
	Reason     Reason
}

// Scanner performs the catalog-wide duplicate scan. It is read-only: it
// never mutates the events it inspects.
type Scanner struct {
	events ScannerCatalog
	cfg    Thresholds
}

// NewScanner creates a scanner over the given catalog.
func NewScanner(events ScannerCatalog, cfg Thresholds) *Scanner {
	return &Scanner{events: events, cfg: cfg}
}

// groupKey buckets events by venue and UTC calendar day. Only events in the
// same bucket can pair up.
type groupKey struct {
	VenueID uuid.UUID
	Day     time.Time
}

// DeduplicateEvents scans every event, compares all pairs sharing a
// (venue, UTC day) bucket, and returns likely duplicates sorted descending
// by confidence so review queues triage the surest pairs first.
func (s *Scanner) DeduplicateEvents(ctx context.Context) ([]DuplicatePair, error) {
	events, err := s.events.AllEventsWithCity(ctx)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	groups := make(map[groupKey][]*catalog.Event)
	for i := range events {
		key := groupKey{
			VenueID: events[i].VenueID,
			Day:     events[i].StartTime.UTC().Truncate(24 * time.Hour),
		}
		groups[key] = append(groups[key], &events[i].Event)
	}

	var pairs []DuplicatePair
	for _, group := range groups {
		if len(group) < 2 {
			continue
		}
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				if pair, ok := s.compare(group[i], group[j]); ok {
					pairs = append(pairs, pair)
				}
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Confidence > pairs[j].Confidence
	})
	return pairs, nil
}

// compare applies the pairwise duplicate rules to two events at the same
// venue on the same day.
func (s *Scanner) compare(a, b *catalog.Event) (DuplicatePair, bool) {
	if sameExternalKey(a, b) {
		return DuplicatePair{A: a, B: b, Confidence: ConfidenceExternalID, Reason: ReasonSameExternalID}, true
	}

	sim := StringSimilarity(NormalizeEventTitle(a.Title), NormalizeEventTitle(b.Title))
	if sim >= s.cfg.TitleSimilarity && DatesWithin(a.StartTime, b.StartTime, s.cfg.EventCloseness) {
		return DuplicatePair{A: a, B: b, Confidence: ConfidenceSameVenueDateTitle, Reason: ReasonSameVenueDateTitle}, true
	}
	if sim >= s.cfg.WeakTitleSimilarity {
		return DuplicatePair{A: a, B: b, Confidence: ConfidenceSimilarTitleDayCity, Reason: ReasonSimilarTitleDayCity}, true
	}
	return DuplicatePair{}, false
}

func sameExternalKey(a, b *catalog.Event) bool {
	return a.ExternalSource != nil && a.ExternalID != nil &&
		b.ExternalSource != nil && b.ExternalID != nil &&
		*a.ExternalSource == *b.ExternalSource && *a.ExternalID == *b.ExternalID
}
