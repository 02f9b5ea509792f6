// internal/handlers/lead.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/anenterprise-lab/pet-food-backend/internal/services"
	"github.com/anenterprise-lab/pet-food-backend/internal/utils"
)

type LeadHandler struct {
	leadService *services.LeadService
}

func NewLeadHandler(leadService *services.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// POST /api/leads
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req services.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid lead payload", err.Error())
		return
	}

	lead, err := h.leadService.CreateLead(&req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, lead)
}
