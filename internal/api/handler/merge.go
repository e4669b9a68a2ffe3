package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/showgrid/showgrid-data/internal/api/respond"
	"github.com/showgrid/showgrid-data/internal/catalog"
)

type mergeRequest struct {
	PrimaryID   uuid.UUID `json:"primary_id"`
	DuplicateID uuid.UUID `json:"duplicate_id"`
}

type mergeResponse struct {
	Merged *catalog.Venue `json:"merged"`
}

// MergeVenues merges a duplicate venue into a primary venue.
// @Summary Merge two venues
// @Description Re-points the duplicate venue's events at the primary, reconciles fields (longer description, higher rating, verified OR), deletes the duplicate, and returns the surviving venue. Atomic: runs in a single transaction.
// @Tags venues
// @Accept json
// @Produce json
// @Param request body mergeRequest true "Primary and duplicate venue IDs"
// @Success 200 {object} mergeResponse
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Failure 500 {object} respond.ErrorResponse
// @Router /api/v1/venues/merge [post]
func (h *Handler) MergeVenues(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "request body must be JSON with primary_id and duplicate_id")
		return
	}
	if req.PrimaryID == uuid.Nil || req.DuplicateID == uuid.Nil {
		respond.BadRequest(w, "primary_id and duplicate_id are required")
		return
	}
	if req.PrimaryID == req.DuplicateID {
		respond.BadRequest(w, "primary_id and duplicate_id must differ")
		return
	}

	merged, err := h.store.MergeVenues(r.Context(), req.PrimaryID, req.DuplicateID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respond.NotFound(w, "one or both venues not found")
			return
		}
		respond.Internal(w, err)
		return
	}

	// The catalog changed; a cached duplicate scan may now be stale.
	h.cache.Invalidate(duplicatesCacheKey)

	respond.JSON(w, http.StatusOK, mergeResponse{Merged: merged})
}
