package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/idempotency"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

const HeaderIdempotencyKey = "Idempotency-Key"

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	availability *appointment.GetAvailability
	create       *appointment.CreateAppointment
	ledger       domain.Ledger
	services     *repository.ServiceGormRepository
	idem         idempotency.Store
	log          *zap.Logger

	// CheckEmailDomain enables the DNS lookup on client emails.
	CheckEmailDomain bool
}

func NewPublicHandler(
	availability *appointment.GetAvailability,
	create *appointment.CreateAppointment,
	ledger domain.Ledger,
	services *repository.ServiceGormRepository,
	idem idempotency.Store,
	log *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		availability: availability,
		create:       create,
		ledger:       ledger,
		services:     services,
		idem:         idem,
		log:          log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PublicCreateAppointmentRequest struct {
	ServiceID   uint   `json:"service_id"`
	Date        string `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime   string `json:"start_time" binding:"required"` // HH:MM
	EndTime     string `json:"end_time"`                      // optional with service_id
	ClientRef   string `json:"client_ref"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	Notes       string `json:"notes" binding:"max=255"`
}

// ======================================================
// SERVICES
// ======================================================

func (h *PublicHandler) ListServices(c *gin.Context) {
	list, err := h.services.ListActive(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *PublicHandler) Availability(c *gin.Context) {
	providerID, err := uintParam(c, "id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Query parameter date is required.")
		return
	}

	serviceID, err := intQuery(c, "service_id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	duration, err := intQuery(c, "duration")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	step, err := intQuery(c, "step")
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if serviceID < 0 || step < 0 {
		httperr.BadRequest(c, "invalid_request", "service_id and step must not be negative.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		ProviderID:      providerID,
		Date:            date,
		ServiceID:       uint(serviceID),
		DurationMinutes: duration,
		StepMinutes:     step,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.AvailabilityDTO{
		ProviderID: providerID,
		Date:       date,
		Duration:   duration,
		Slots:      slots,
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	providerID, err := uintParam(c, "id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	phone, ok := validators.NormalizePhone(req.ClientPhone)
	if !ok {
		httperr.BadRequest(c, "invalid_client_phone", "Invalid phone number.")
		return
	}

	email := strings.TrimSpace(req.ClientEmail)
	if email != "" {
		if !validators.IsEmailSyntaxValid(email) ||
			(h.CheckEmailDomain && !validators.IsEmailDomainValid(email)) {
			httperr.BadRequest(c, "invalid_client_email", "Invalid email address.")
			return
		}
	}

	ctx := c.Request.Context()

	key := strings.TrimSpace(c.GetHeader(HeaderIdempotencyKey))
	if key != "" {
		key = idempotencyScope(providerID, key)

		prevID, err := h.idem.Begin(ctx, key)
		switch {
		case errors.Is(err, idempotency.ErrInFlight):
			httperr.Conflict(c, "request_in_progress", "A request with this idempotency key is still running.")
			return
		case err != nil:
			h.log.Error("idempotency store", zap.Error(err))
			httperr.Unavailable(c, "store_unavailable", "Service temporarily unavailable, try again later.")
			return
		case prevID != "":
			ap, err := h.ledger.GetAppointment(ctx, prevID)
			if err != nil {
				writeError(c, h.log, err)
				return
			}
			httpresp.OK(c, dto.NewAppointmentDTO(ap))
			return
		}
	}

	ap, err := h.create.Execute(ctx, appointment.CreateAppointmentInput{
		ProviderID:  providerID,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		ClientRef:   req.ClientRef,
		ClientName:  req.ClientName,
		ClientPhone: phone,
		ClientEmail: email,
		Notes:       req.Notes,
		Source:      "public",
	})

	if key != "" {
		if err != nil {
			if rerr := h.idem.Release(ctx, key); rerr != nil {
				h.log.Warn("idempotency release", zap.Error(rerr))
			}
		} else if cerr := h.idem.Complete(ctx, key, ap.ID); cerr != nil {
			h.log.Warn("idempotency complete", zap.Error(cerr))
		}
	}

	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Created(c, dto.NewAppointmentDTO(ap))
}

func idempotencyScope(providerID uint, key string) string {
	return strconv.FormatUint(uint64(providerID), 10) + ":" + key
}
