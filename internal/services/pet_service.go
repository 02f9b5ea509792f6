// internal/services/pet_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anenterprise-lab/pet-food-backend/internal/models"
	"github.com/anenterprise-lab/pet-food-backend/internal/utils"
)

type PetService struct {
	db *gorm.DB
}

type CreatePetRequest struct {
	Name           string     `json:"name" validate:"required,min=1,max=100"`
	AvatarURL      string     `json:"avatarUrl,omitempty"`
	Birthday       *time.Time `json:"birthday,omitempty"`
	FavoriteTreats string     `json:"favoriteTreats,omitempty"`
}

type UpdateAvatarRequest struct {
	AvatarBaseColor string `json:"avatarBaseColor,omitempty" validate:"omitempty,hexcolor"`
	AvatarAccessory string `json:"avatarAccessory,omitempty"`
}

type LogMoodRequest struct {
	Mood models.MoodType `json:"mood" validate:"required,pet_mood"`
}

// Mood history responses are capped to the most recent entries.
const moodHistoryLimit = 10

func NewPetService(db *gorm.DB) *PetService {
	return &PetService{db: db}
}

func (s *PetService) CreatePet(userID uuid.UUID, req *CreatePetRequest) (*models.Pet, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("validation failed: %v", err)}
	}

	pet := &models.Pet{
		UserID:         userID,
		Name:           req.Name,
		AvatarURL:      req.AvatarURL,
		Birthday:       req.Birthday,
		FavoriteTreats: req.FavoriteTreats,
	}

	if err := s.db.Create(pet).Error; err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	return pet, nil
}

func (s *PetService) GetMyPets(userID uuid.UUID) ([]models.Pet, error) {
	var pets []models.Pet
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&pets).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch pets: %w", err)
	}
	return pets, nil
}

// UpdateAvatar changes the avatar-builder fields of a pet owned by the
// caller. Omitted fields keep their current value.
func (s *PetService) UpdateAvatar(petID, userID uuid.UUID, req *UpdateAvatarRequest) (*models.Pet, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("validation failed: %v", err)}
	}

	pet, err := s.ownedPet(petID, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.AvatarBaseColor != "" {
		updates["avatar_base_color"] = req.AvatarBaseColor
	}
	if req.AvatarAccessory != "" {
		updates["avatar_accessory"] = req.AvatarAccessory
	}

	if len(updates) > 0 {
		if err := s.db.Model(pet).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update avatar: %w", err)
		}
	}

	return pet, nil
}

func (s *PetService) LogMood(petID, userID uuid.UUID, req *LogMoodRequest) (*models.PetMood, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("validation failed: %v", err)}
	}

	if _, err := s.ownedPet(petID, userID); err != nil {
		return nil, err
	}

	mood := &models.PetMood{
		PetID:  petID,
		UserID: userID,
		Mood:   req.Mood,
	}

	if err := s.db.Create(mood).Error; err != nil {
		return nil, fmt.Errorf("failed to log mood: %w", err)
	}

	return mood, nil
}

// GetMoods returns the pet's most recent mood entries, newest first.
func (s *PetService) GetMoods(petID, userID uuid.UUID) ([]models.PetMood, error) {
	if _, err := s.ownedPet(petID, userID); err != nil {
		return nil, err
	}

	var moods []models.PetMood
	if err := s.db.Where("pet_id = ?", petID).
		Order("created_at DESC").
		Limit(moodHistoryLimit).
		Find(&moods).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch moods: %w", err)
	}

	return moods, nil
}

// ownedPet resolves a pet and enforces ownership. A pet owned by someone
// else reads the same as a missing one.
func (s *PetService) ownedPet(petID, userID uuid.UUID) (*models.Pet, error) {
	var pet models.Pet
	if err := s.db.First(&pet, "id = ?", petID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Pet"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if pet.UserID != userID {
		return nil, &NotFoundError{Resource: "Pet"}
	}

	return &pet, nil
}
