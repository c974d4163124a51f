package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/holistia-mx/availability-engine/internal/bridge"
	"github.com/holistia-mx/availability-engine/internal/middleware"
)

type SyncHandler struct {
	bridge *bridge.Bridge
}

func NewSyncHandler(b *bridge.Bridge) *SyncHandler {
	return &SyncHandler{bridge: b}
}

func (h *SyncHandler) Diagnose(c *gin.Context) {
	providerIDVal, _ := c.Get(middleware.ContextProviderID)
	providerID := providerIDVal.(uint)

	result, err := h.bridge.Diagnose(c.Request.Context(), providerID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SyncHandler) ForceSync(c *gin.Context) {
	providerIDVal, _ := c.Get(middleware.ContextProviderID)
	providerID := providerIDVal.(uint)

	result, err := h.bridge.ForceSync(c.Request.Context(), providerID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	if result.Success && result.Created == 0 && result.Deleted == 0 {
		// Zero-effect syncs are normal; the funnel tells the operator why.
		result.Reason = "already in sync: every fetched event was transparent, ours, or mirrored already"
	}

	c.JSON(http.StatusOK, result)
}

func (h *SyncHandler) CleanDuplicates(c *gin.Context) {
	providerIDVal, _ := c.Get(middleware.ContextProviderID)
	providerID := providerIDVal.(uint)

	result, err := h.bridge.CleanDuplicates(c.Request.Context(), providerID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
