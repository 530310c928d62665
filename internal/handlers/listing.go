package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/apperr"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/logger"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/services"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/types"
)

type ListingHandler struct {
	log            *logger.Logger
	listingService services.ListingService
}

func NewListingHandler(log *logger.Logger, listingService services.ListingService) *ListingHandler {
	return &ListingHandler{
		log:            log.With("handler", "ListingHandler"),
		listingService: listingService,
	}
}

// Add handles POST /releases/:id/listings and responds with the updated
// release view so the front end can re-render the whole card.
func (h *ListingHandler) Add(c *gin.Context) {
	releaseID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in types.ListingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondAppError(c, apperr.Validation("invalid_body", "invalid request body: %v", err))
		return
	}
	view, err := h.listingService.Add(c.Request.Context(), releaseID, in)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, view)
}

func (h *ListingHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var patch types.ListingPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		RespondAppError(c, apperr.Validation("invalid_body", "invalid request body: %v", err))
		return
	}
	view, err := h.listingService.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, view)
}

func (h *ListingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.listingService.Delete(c.Request.Context(), id); err != nil {
		RespondAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
