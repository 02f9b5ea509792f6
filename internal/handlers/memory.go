// internal/handlers/memory.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/anenterprise-lab/pet-food-backend/internal/services"
	"github.com/anenterprise-lab/pet-food-backend/internal/utils"
)

type MemoryHandler struct {
	memoryService *services.MemoryService
}

func NewMemoryHandler(memoryService *services.MemoryService) *MemoryHandler {
	return &MemoryHandler{memoryService: memoryService}
}

// GET /api/memories
func (h *MemoryHandler) GetMemories(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	memories, total, err := h.memoryService.GetMemories(params)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(memories, total, params))
}

// POST /api/memories
func (h *MemoryHandler) CreateMemory(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.CreateMemoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid memory payload", err.Error())
		return
	}

	memory, err := h.memoryService.CreateMemory(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, memory)
}

// POST /api/memories/:id/light
func (h *MemoryHandler) LightCandle(c *gin.Context) {
	memoryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	memory, err := h.memoryService.LightCandle(memoryID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, memory)
}
