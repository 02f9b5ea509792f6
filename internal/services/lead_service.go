// internal/services/lead_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/anenterprise-lab/pet-food-backend/internal/models"
	"github.com/anenterprise-lab/pet-food-backend/internal/utils"
)

// LeadService records wholesale contact requests submitted from the
// public site.
type LeadService struct {
	db *gorm.DB
}

type CreateLeadRequest struct {
	CompanyName   string `json:"companyName" validate:"required,min=2,max=255"`
	ContactPerson string `json:"contactPerson" validate:"required,min=2,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Message       string `json:"message,omitempty"`
}

func NewLeadService(db *gorm.DB) *LeadService {
	return &LeadService{db: db}
}

func (s *LeadService) CreateLead(req *CreateLeadRequest) (*models.B2BLead, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("validation failed: %v", err)}
	}

	lead := &models.B2BLead{
		CompanyName:   req.CompanyName,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Message:       req.Message,
	}

	if err := s.db.Create(lead).Error; err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	return lead, nil
}
