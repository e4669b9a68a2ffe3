package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/showgrid/showgrid-data/internal/api/respond"
	"github.com/showgrid/showgrid-data/internal/cache"
	"github.com/showgrid/showgrid-data/internal/catalog"
	"github.com/showgrid/showgrid-data/internal/match"
)

const duplicatesCacheKey = "duplicates:events"

// eventSummary is the compact event view returned in duplicate pairs.
type eventSummary struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	VenueID        uuid.UUID `json:"venue_id"`
	StartTime      time.Time `json:"start_time"`
	ExternalSource *string   `json:"external_source,omitempty"`
	ExternalID     *string   `json:"external_id,omitempty"`
}

type duplicatePairView struct {
	A          eventSummary `json:"a"`
	B          eventSummary `json:"b"`
	Confidence float64      `json:"confidence"`
	Reason     match.Reason `json:"reason"`
}

type duplicatesResponse struct {
	Count       int                 `json:"count"`
	GeneratedAt time.Time           `json:"generated_at"`
	Pairs       []duplicatePairView `json:"pairs"`
}

// GetDuplicates runs the catalog-wide duplicate event scan.
// @Summary Scan catalog for duplicate events
// @Description Compares all events sharing a venue and UTC day, returning likely duplicate pairs sorted by confidence. Read-only: nothing is merged or deleted. Results are cached.
// @Tags dedupe
// @Produce json
// @Success 200 {object} duplicatesResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/v1/duplicates [get]
func (h *Handler) GetDuplicates(w http.ResponseWriter, r *http.Request) {
	ttl := cache.TTLDuplicateScan

	if data, etag, ok := h.cache.Get(duplicatesCacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.NotModified(w, etag)
			return
		}
		respond.Cached(w, data, etag, ttl, true)
		return
	}

	pairs, err := h.scanner.DeduplicateEvents(r.Context())
	if err != nil {
		respond.Internal(w, err)
		return
	}

	resp := duplicatesResponse{
		Count:       len(pairs),
		GeneratedAt: time.Now().UTC(),
		Pairs:       make([]duplicatePairView, 0, len(pairs)),
	}
	for _, p := range pairs {
		resp.Pairs = append(resp.Pairs, duplicatePairView{
			A:          summarize(p.A),
			B:          summarize(p.B),
			Confidence: p.Confidence,
			Reason:     p.Reason,
		})
	}

	data, err := json.Marshal(resp)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	etag := h.cache.Set(duplicatesCacheKey, data, ttl)
	respond.Cached(w, data, etag, ttl, false)
}

func summarize(e *catalog.Event) eventSummary {
	return eventSummary{
		ID:             e.ID,
		Title:          e.Title,
		VenueID:        e.VenueID,
		StartTime:      e.StartTime,
		ExternalSource: e.ExternalSource,
		ExternalID:     e.ExternalID,
	}
}
