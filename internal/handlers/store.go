package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/apperr"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/logger"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/services"
	"github.com/ye-gang-jjang/vinyl-alert-api/internal/types"
)

type StoreHandler struct {
	log          *logger.Logger
	storeService services.StoreService
}

func NewStoreHandler(log *logger.Logger, storeService services.StoreService) *StoreHandler {
	return &StoreHandler{
		log:          log.With("handler", "StoreHandler"),
		storeService: storeService,
	}
}

func (h *StoreHandler) List(c *gin.Context) {
	views, err := h.storeService.List(c.Request.Context())
	if err != nil {
		h.log.Error("List stores failed", "error", err)
		RespondAppError(c, err)
		return
	}
	RespondOK(c, views)
}

func (h *StoreHandler) Create(c *gin.Context) {
	var in types.StoreInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondAppError(c, apperr.Validation("invalid_body", "invalid request body: %v", err))
		return
	}
	view, err := h.storeService.Create(c.Request.Context(), in)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, view)
}

func (h *StoreHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.storeService.Delete(c.Request.Context(), id); err != nil {
		RespondAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
