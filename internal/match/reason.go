package match

import "time"

// Reason is the closed set of codes explaining why two records were judged
// to denote the same real-world entity. The values are stable wire strings;
// review tooling keys off them.
type Reason string

const (
	// Venue strategies, in priority order.
	ReasonExternalID        Reason = "external_id"
	ReasonExactNameSameCity Reason = "exact_name_same_city"
	ReasonSimilarNameCity   Reason = "similar_name_same_city"
	ReasonSimilarNameNearby Reason = "similar_name_nearby"

	// Event strategies, in priority order.
	ReasonSameExternalID      Reason = "same_external_id"
	ReasonSameVenueDateTitle  Reason = "same_venue_similar_date_similar_title"
	ReasonSimilarTitleDayCity Reason = "similar_title_same_day_same_city"
)

// Confidence scores per strategy. An exact-key match is certain; fuzzier
// strategies step down from there.
const (
	ConfidenceExternalID          = 1.00
	ConfidenceExactNameSameCity   = 0.95
	ConfidenceSimilarNameCity     = 0.90
	ConfidenceSimilarNameNearby   = 0.88
	ConfidenceSameVenueDateTitle  = 0.92
	ConfidenceSimilarTitleDayCity = 0.75
)

// Thresholds are the tunable knobs of the matchers and scanner. Defaults
// are the reference values; override via configuration, not code edits.
type Thresholds struct {
	VenueNameSimilarity float64       // minimum name similarity for fuzzy venue matches
	VenueProximityKm    float64       // maximum distance for the nearby-venue strategy
	TitleSimilarity     float64       // minimum title similarity for strong event matches
	WeakTitleSimilarity float64       // minimum title similarity for cross-source weak matches
	EventCloseness      time.Duration // strict start-time closeness for strong event matches
	EventSearchWindow   time.Duration // pre-filter window around the candidate start time
}

// DefaultThresholds returns the reference matching thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VenueNameSimilarity: 0.85,
		VenueProximityKm:    0.5,
		TitleSimilarity:     0.85,
		WeakTitleSimilarity: 0.80,
		EventCloseness:      2 * time.Hour,
		EventSearchWindow:   3 * time.Hour,
	}
}
