package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type WorkingHoursHandler struct {
	schedule *repository.ScheduleGormRepository
	log      *zap.Logger
}

func NewWorkingHoursHandler(
	schedule *repository.ScheduleGormRepository,
	log *zap.Logger,
) *WorkingHoursHandler {
	return &WorkingHoursHandler{schedule: schedule, log: log}
}

type WorkingDayConfig struct {
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	providerID := middleware.ProviderID(c)

	rows, err := h.schedule.ListWeek(c.Request.Context(), providerID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// Update replaces the whole week. Each weekday may appear once and active
// days need a valid window; a break, when given, must sit inside it.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	providerID := middleware.ProviderID(c)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	seen := make(map[int]bool, len(req.Days))
	rows := make([]models.WeeklySchedule, 0, len(req.Days))

	for _, d := range req.Days {
		if seen[d.Weekday] {
			httperr.BadRequest(c, "duplicate_weekday", "Weekday "+strconv.Itoa(d.Weekday)+" appears more than once.")
			return
		}
		seen[d.Weekday] = true

		if code, msg := validateWorkingDay(d); code != "" {
			httperr.BadRequest(c, code, msg)
			return
		}

		rows = append(rows, models.WeeklySchedule{
			Weekday:     d.Weekday,
			IsAvailable: d.Active,
			StartTime:   clockOrEmpty(d.StartTime),
			EndTime:     clockOrEmpty(d.EndTime),
			BreakStart:  clockOrEmpty(d.BreakStart),
			BreakEnd:    clockOrEmpty(d.BreakEnd),
		})
	}

	if err := h.schedule.ReplaceWeek(c.Request.Context(), providerID, rows); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// clockOrEmpty stores times as canonical HH:MM. Inactive days may carry
// anything; unparsable values are dropped.
func clockOrEmpty(hm string) string {
	v, err := domain.NormalizeClock(hm)
	if err != nil {
		return ""
	}
	return v
}

func validateWorkingDay(d WorkingDayConfig) (code, msg string) {
	if !d.Active {
		return "", ""
	}

	window, err := domain.ParseInterval(d.StartTime, d.EndTime)
	if err != nil {
		return "invalid_working_window", "Weekday " + strconv.Itoa(d.Weekday) + ": start_time and end_time must be HH:MM with start before end."
	}

	if d.BreakStart == "" && d.BreakEnd == "" {
		return "", ""
	}

	br, err := domain.ParseInterval(d.BreakStart, d.BreakEnd)
	if err != nil || br.Start < window.Start || br.End > window.End {
		return "invalid_break", "Weekday " + strconv.Itoa(d.Weekday) + ": break must be HH:MM inside the working window."
	}
	return "", ""
}
