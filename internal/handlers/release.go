package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/apperr"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/logger"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/services"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/types"
)

type ReleaseHandler struct {
	log            *logger.Logger
	releaseService services.ReleaseService
}

func NewReleaseHandler(log *logger.Logger, releaseService services.ReleaseService) *ReleaseHandler {
	return &ReleaseHandler{
		log:            log.With("handler", "ReleaseHandler"),
		releaseService: releaseService,
	}
}

func (h *ReleaseHandler) List(c *gin.Context) {
	views, err := h.releaseService.List(c.Request.Context())
	if err != nil {
		h.log.Error("List releases failed", "error", err)
		RespondAppError(c, err)
		return
	}
	RespondOK(c, views)
}

func (h *ReleaseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.releaseService.Get(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, view)
}

func (h *ReleaseHandler) Create(c *gin.Context) {
	var in types.ReleaseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondAppError(c, apperr.Validation("invalid_body", "invalid request body: %v", err))
		return
	}
	view, err := h.releaseService.Create(c.Request.Context(), in)
	if err != nil {
		h.log.Error("Create release failed", "error", err)
		RespondAppError(c, err)
		return
	}
	RespondOK(c, view)
}

func (h *ReleaseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.releaseService.Delete(c.Request.Context(), id); err != nil {
		RespondAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
