package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ye-gang-jjang/vinyl-alert-api/internal/apperr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAppError maps service errors onto the HTTP contract: missing
// entities are 404, validation failures and blocked deletes are 400.
func RespondAppError(c *gin.Context, err error) {
	if e, ok := apperr.As(err); ok {
		status := http.StatusBadRequest
		if e.Kind == apperr.KindNotFound {
			status = http.StatusNotFound
		}
		RespondError(c, status, e.Code, e)
		return
	}
	RespondError(c, http.StatusInternalServerError, "internal_error", err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// pathID parses a numeric path parameter. Non-numeric identifiers are a
// validation failure, not a not-found.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		RespondAppError(c, apperr.Validation("invalid_id", "path parameter %q must be numeric", name))
		return 0, false
	}
	return id, true
}
