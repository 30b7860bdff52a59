package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

type RevenueHandler struct {
	revenue *appointment.GetRevenue
	log     *zap.Logger
}

func NewRevenueHandler(revenue *appointment.GetRevenue, log *zap.Logger) *RevenueHandler {
	return &RevenueHandler{revenue: revenue, log: log}
}

func (h *RevenueHandler) Get(c *gin.Context) {
	report, err := h.revenue.Execute(c.Request.Context(), middleware.ProviderID(c))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	httpresp.OK(c, report)
}
