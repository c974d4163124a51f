package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/holistia-mx/availability-engine/internal/domain/availability"
	"github.com/holistia-mx/availability-engine/internal/middleware"
	"github.com/holistia-mx/availability-engine/internal/reload"
	"github.com/holistia-mx/availability-engine/internal/validators"
)

type WorkingHoursHandler struct {
	repo domain.Repository
	bus  reload.Bus
	log  *zap.Logger
}

func NewWorkingHoursHandler(repo domain.Repository, bus reload.Bus, log *zap.Logger) *WorkingHoursHandler {
	return &WorkingHoursHandler{repo: repo, bus: bus, log: log}
}

// One start/end pair shared by every active day. The surface matches the
// persisted shape exactly; there is no per-day facade.
type WorkingHoursUpdateRequest struct {
	Days      []int  `json:"days" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

type WorkingHoursResponse struct {
	Days      []int  `json:"days"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	providerIDVal, _ := c.Get(middleware.ContextProviderID)
	providerID := providerIDVal.(uint)

	provider, err := h.repo.GetProvider(c.Request.Context(), providerID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	days := []int{}
	for d := 1; d <= 7; d++ {
		if provider.ActiveWeekdays()[d] {
			days = append(days, d)
		}
	}

	c.JSON(http.StatusOK, WorkingHoursResponse{
		Days:      days,
		StartTime: provider.StartTime,
		EndTime:   provider.EndTime,
	})
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	providerIDVal, _ := c.Get(middleware.ContextProviderID)
	providerID := providerIDVal.(uint)

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	for _, d := range req.Days {
		if d < 1 || d > 7 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_weekday"})
			return
		}
	}
	if !validators.IsClock(req.StartTime) || !validators.IsClock(req.EndTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_time_format"})
		return
	}
	if !validators.ClockBefore(req.StartTime, req.EndTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_not_before_end"})
		return
	}

	provider, err := h.repo.GetProvider(c.Request.Context(), providerID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	provider.SetActiveWeekdays(req.Days)
	provider.StartTime = req.StartTime
	provider.EndTime = req.EndTime

	if err := h.repo.UpdateProvider(c.Request.Context(), provider); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_working_hours"})
		return
	}

	// The envelope changed: every cached grid for this provider is stale.
	if err := h.bus.Publish(c.Request.Context(), providerID); err != nil {
		h.log.Warn("working hours update: reload publish failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
