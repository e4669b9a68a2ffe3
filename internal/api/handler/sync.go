package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/showgrid/showgrid-data/internal/api/respond"
	"github.com/showgrid/showgrid-data/internal/cache"
)

// TriggerEventSync runs all configured event sources concurrently.
// @Summary Trigger an event sync run
// @Description Fans out every configured provider source concurrently and returns per-source stats. Sources without credentials are skipped. Runs synchronously; the response is the completed run result.
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/sync/events [post]
func (h *Handler) TriggerEventSync(w http.ResponseWriter, r *http.Request) {
	result := h.orch.RunEventSync(r.Context())

	// New events can change the duplicate scan.
	h.cache.Invalidate(duplicatesCacheKey)

	respond.JSON(w, http.StatusOK, result)
}

// TriggerVenueDiscovery runs the places venue-discovery source.
// @Summary Trigger a venue discovery run
// @Description Discovers venues from the places provider for the configured cities. Returns 503 when no places credentials are configured.
// @Tags sync
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/sync/venues [post]
func (h *Handler) TriggerVenueDiscovery(w http.ResponseWriter, r *http.Request) {
	result := h.orch.RunVenueDiscovery(r.Context())

	if len(result.PerSource) == 0 && len(result.Totals.Errors) > 0 {
		respond.Error(w, http.StatusServiceUnavailable, "not_configured", result.Totals.Errors[0])
		return
	}

	respond.JSON(w, http.StatusOK, result)
}

// GetSyncLogs returns recent sync audit rows.
// @Summary List recent sync runs
// @Description Returns the most recent sync log entries, newest first, optionally filtered by source.
// @Tags sync
// @Produce json
// @Param source query string false "Filter by source name" Enums(manual, ticketmaster, eventbrite, google_places)
// @Param limit query int false "Max rows to return (default 50, max 200)"
// @Success 200 {object} respond.ListResponse
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/sync/logs [get]
func (h *Handler) GetSyncLogs(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")

	limit := 50
	if l := r.URL.Query().Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			respond.BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > 200 {
		limit = 200
	}

	cacheKey := "sync_logs:" + source + ":" + strconv.Itoa(limit)
	ttl := cache.TTLSyncLogs

	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.NotModified(w, etag)
			return
		}
		respond.Cached(w, data, etag, ttl, true)
		return
	}

	entries, err := h.store.RecentSyncLogs(r.Context(), source, limit)
	if err != nil {
		respond.Internal(w, err)
		return
	}

	data, err := json.Marshal(respond.ListResponse{Count: len(entries), Items: entries})
	if err != nil {
		respond.Internal(w, err)
		return
	}

	etag := h.cache.Set(cacheKey, data, ttl)
	respond.Cached(w, data, etag, ttl, false)
}
