package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/holistia-mx/availability-engine/internal/cache"
	"github.com/holistia-mx/availability-engine/internal/middleware"
)

type AvailabilityHandler struct {
	cache *cache.AvailabilityCache
}

func NewAvailabilityHandler(c *cache.AvailabilityCache) *AvailabilityHandler {
	return &AvailabilityHandler{cache: c}
}

// GetWeek serves the 7-day slot grid through the cache service and warms
// the adjacent weeks in the background.
func (h *AvailabilityHandler) GetWeek(c *gin.Context) {
	providerIDVal, _ := c.Get(middleware.ContextProviderID)
	providerID := providerIDVal.(uint)

	weekStart, err := weekStartOrNow(c.Query("week_start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_week_start"})
		return
	}

	useCache := c.Query("refresh") != "true"

	grid, applied, err := h.cache.Load(c.Request.Context(), providerID, weekStart, useCache)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if !applied {
		// Superseded by a newer navigation; nothing to show for this one.
		c.JSON(http.StatusOK, gin.H{"superseded": true})
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		h.cache.PreloadAdjacent(ctx, providerID, weekStart)
	}()

	c.JSON(http.StatusOK, grid)
}
