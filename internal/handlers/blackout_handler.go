package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type BlackoutHandler struct {
	blackouts *repository.BlackoutGormRepository
	loc       *time.Location
	log       *zap.Logger
}

func NewBlackoutHandler(
	blackouts *repository.BlackoutGormRepository,
	loc *time.Location,
	log *zap.Logger,
) *BlackoutHandler {
	return &BlackoutHandler{blackouts: blackouts, loc: loc, log: log}
}

type CreateBlackoutRequest struct {
	Date      string `json:"date" binding:"required"`
	AllDay    bool   `json:"all_day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason" binding:"max=255"`
}

// List returns upcoming blackouts; ?from=YYYY-MM-DD overrides today.
func (h *BlackoutHandler) List(c *gin.Context) {
	providerID := middleware.ProviderID(c)

	from := c.Query("from")
	if from == "" {
		from = timezone.Today(time.Now().In(h.loc))
	} else if _, err := domain.ParseDate(from); err != nil {
		writeError(c, h.log, err)
		return
	}

	rows, err := h.blackouts.ListBlackouts(c.Request.Context(), providerID, from)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.List(c, rows)
}

func (h *BlackoutHandler) Create(c *gin.Context) {
	providerID := middleware.ProviderID(c)

	var req CreateBlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if _, err := domain.ParseDate(req.Date); err != nil {
		writeError(c, h.log, err)
		return
	}

	row := models.BlackoutWindow{
		ProviderID: providerID,
		Date:       req.Date,
		AllDay:     req.AllDay,
		Reason:     req.Reason,
	}

	if !req.AllDay {
		iv, err := domain.ParseInterval(req.StartTime, req.EndTime)
		if err != nil {
			writeError(c, h.log, err)
			return
		}
		row.StartTime = domain.MinutesToTime(iv.Start)
		row.EndTime = domain.MinutesToTime(iv.End)
	}

	if err := h.blackouts.AddBlackout(c.Request.Context(), &row); err != nil {
		writeError(c, h.log, err)
		return
	}

	httpresp.Created(c, row)
}

func (h *BlackoutHandler) Delete(c *gin.Context) {
	providerID := middleware.ProviderID(c)

	id, err := uintParam(c, "id")
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	if err := h.blackouts.DeleteBlackout(c.Request.Context(), providerID, id); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
