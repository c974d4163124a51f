package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/holistia-mx/availability-engine/internal/httpresp"
	"github.com/holistia-mx/availability-engine/internal/middleware"
	ucBlock "github.com/holistia-mx/availability-engine/internal/usecase/block"
)

type BlockHandler struct {
	createUC *ucBlock.CreateBlock
	updateUC *ucBlock.UpdateBlock
	deleteUC *ucBlock.DeleteBlock
	listUC   *ucBlock.ListBlocks
}

func NewBlockHandler(
	createUC *ucBlock.CreateBlock,
	updateUC *ucBlock.UpdateBlock,
	deleteUC *ucBlock.DeleteBlock,
	listUC *ucBlock.ListBlocks,
) *BlockHandler {
	return &BlockHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		listUC:   listUC,
	}
}

func (h *BlockHandler) List(c *gin.Context) {
	providerIDVal, _ := c.Get(middleware.ContextProviderID)
	providerID := providerIDVal.(uint)

	blocks, err := h.listUC.Execute(c.Request.Context(), providerID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.List(c, blocks)
}

func (h *BlockHandler) Create(c *gin.Context) {
	providerIDVal, _ := c.Get(middleware.ContextProviderID)
	providerID := providerIDVal.(uint)

	var in ucBlock.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), providerID, in)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

func (h *BlockHandler) Update(c *gin.Context) {
	providerIDVal, _ := c.Get(middleware.ContextProviderID)
	providerID := providerIDVal.(uint)

	blockID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_block_id"})
		return
	}

	var in ucBlock.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	b, err := h.updateUC.Execute(c.Request.Context(), providerID, uint(blockID), in)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BlockHandler) Delete(c *gin.Context) {
	providerIDVal, _ := c.Get(middleware.ContextProviderID)
	providerID := providerIDVal.(uint)

	blockID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_block_id"})
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), providerID, uint(blockID)); err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
