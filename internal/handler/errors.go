package handler

import (
	"errors"
	"net/http"

	"hospital-room-allocation/internal/engine"
	"hospital-room-allocation/pkg/utils"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps the typed engine errors to HTTP status codes.
// Anything unrecognized is a 500 without leaking internals.
func handleServiceError(c *gin.Context, err error) {
	var notFound *engine.NotFoundError
	var conflict *engine.ConflictError
	var invalidState *engine.InvalidStateError
	var validation *engine.ValidationError
	var partial *engine.PartialFailureError

	switch {
	case errors.As(err, &notFound):
		utils.ErrorResponse(c, http.StatusNotFound, notFound.Error())
	case errors.As(err, &conflict):
		utils.ErrorResponse(c, http.StatusConflict, conflict.Error())
	case errors.As(err, &invalidState):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, invalidState.Error())
	case errors.As(err, &validation):
		utils.ErrorResponse(c, http.StatusBadRequest, validation.Error())
	case errors.As(err, &partial):
		// Surface the committed records so an operator can reconcile
		utils.ErrorResponse(c, http.StatusInternalServerError, partial.Error())
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
