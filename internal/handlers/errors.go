package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

var businessStatus = map[string]int{
	"slot_conflict":         http.StatusConflict,
	"invalid_transition":    http.StatusConflict,
	"appointment_not_found": http.StatusNotFound,
	"blackout_not_found":    http.StatusNotFound,
	"service_not_found":     http.StatusBadRequest,
	"too_soon":              http.StatusBadRequest,
	"outside_working_hours": http.StatusBadRequest,
	"invalid_interval":      http.StatusBadRequest,
	"invalid_duration":      http.StatusBadRequest,
	"invalid_status":        http.StatusBadRequest,
}

var businessMessage = map[string]string{
	"slot_conflict":         "The requested time is no longer available.",
	"invalid_transition":    "The appointment cannot move to that status.",
	"appointment_not_found": "Appointment not found.",
	"blackout_not_found":    "Blackout not found.",
	"service_not_found":     "Service not found.",
	"too_soon":              "The requested time is too soon or in the past.",
	"outside_working_hours": "The requested time is outside working hours.",
	"invalid_interval":      "End time must be after start time.",
	"invalid_duration":      "A positive duration or a service is required.",
	"invalid_status":        "Unknown status.",
}

// writeError maps engine errors onto HTTP responses.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var pe *domain.ParseError
	if errors.As(err, &pe) {
		httperr.BadRequest(c, "invalid_"+pe.Field, pe.Error())
		return
	}

	if code := httperr.BusinessCode(err); code != "" {
		status, ok := businessStatus[code]
		if !ok {
			status = http.StatusBadRequest
		}
		httperr.Write(c, status, code, businessMessage[code])
		return
	}

	if domain.IsStoreUnavailable(err) {
		log.Error("store unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		httperr.Unavailable(c, "store_unavailable", "Service temporarily unavailable, try again later.")
		return
	}

	log.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
	httperr.Internal(c, "internal_error", "Unexpected error.")
}
