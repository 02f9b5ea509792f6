// internal/services/memory_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anenterprise-lab/pet-food-backend/internal/models"
	"github.com/anenterprise-lab/pet-food-backend/internal/utils"
)

// MemoryService manages the public memory wall.
type MemoryService struct {
	db *gorm.DB
}

type CreateMemoryRequest struct {
	PetName  string `json:"petName" validate:"required,min=1,max=100"`
	ImageURL string `json:"imageUrl" validate:"required"`
	Tribute  string `json:"tribute" validate:"required"`
}

func NewMemoryService(db *gorm.DB) *MemoryService {
	return &MemoryService{db: db}
}

// GetMemories lists tribute posts newest first.
func (s *MemoryService) GetMemories(params utils.PaginationParams) ([]models.Memory, int64, error) {
	query := s.db.Model(&models.Memory{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count memories: %w", err)
	}

	query = utils.ApplySort(query, params, []string{"created_at", "lights"})
	query = utils.ApplyPagination(query, params)

	var memories []models.Memory
	if err := query.Find(&memories).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch memories: %w", err)
	}

	return memories, total, nil
}

func (s *MemoryService) CreateMemory(userID uuid.UUID, req *CreateMemoryRequest) (*models.Memory, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("validation failed: %v", err)}
	}

	memory := &models.Memory{
		UserID:   userID,
		PetName:  req.PetName,
		ImageURL: req.ImageURL,
		Tribute:  req.Tribute,
	}

	if err := s.db.Create(memory).Error; err != nil {
		return nil, fmt.Errorf("failed to create memory: %w", err)
	}

	return memory, nil
}

// LightCandle atomically increments a memory's virtual-candle counter.
func (s *MemoryService) LightCandle(memoryID uuid.UUID) (*models.Memory, error) {
	var memory models.Memory

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&memory, "id = ?", memoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "Memory"}
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Model(&memory).
			UpdateColumn("lights", gorm.Expr("lights + ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to light candle: %w", err)
		}

		return tx.First(&memory, "id = ?", memoryID).Error
	})

	if err != nil {
		return nil, err
	}

	return &memory, nil
}
