package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/holistia-mx/availability-engine/internal/httpresp"
	"github.com/holistia-mx/availability-engine/internal/middleware"
	ucSchedule "github.com/holistia-mx/availability-engine/internal/usecase/schedule"
)

type AppointmentHandler struct {
	listByDateUC *ucSchedule.ListAppointmentsByDate
}

func NewAppointmentHandler(listByDateUC *ucSchedule.ListAppointmentsByDate) *AppointmentHandler {
	return &AppointmentHandler{listByDateUC: listByDateUC}
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	providerIDVal, _ := c.Get(middleware.ContextProviderID)
	providerID := providerIDVal.(uint)

	dateStr := c.Query("date")
	if _, err := parseDateParam(dateStr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_date"})
		return
	}

	apps, err := h.listByDateUC.Execute(c.Request.Context(), providerID, dateStr)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, apps)
}
