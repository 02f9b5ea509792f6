// internal/handlers/pet.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/anenterprise-lab/pet-food-backend/internal/services"
	"github.com/anenterprise-lab/pet-food-backend/internal/utils"
)

type PetHandler struct {
	petService *services.PetService
}

func NewPetHandler(petService *services.PetService) *PetHandler {
	return &PetHandler{petService: petService}
}

// POST /api/pets
func (h *PetHandler) CreatePet(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid pet payload", err.Error())
		return
	}

	pet, err := h.petService.CreatePet(userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, pet)
}

// GET /api/pets/mypets
func (h *PetHandler) GetMyPets(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	pets, err := h.petService.GetMyPets(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, pets)
}

// PUT /api/pets/:id/avatar
func (h *PetHandler) UpdateAvatar(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	petID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid avatar payload", err.Error())
		return
	}

	pet, err := h.petService.UpdateAvatar(petID, userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, pet)
}

// POST /api/moods/:petId
func (h *PetHandler) LogMood(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	petID, ok := pathID(c, "petId")
	if !ok {
		return
	}

	var req services.LogMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid mood payload", err.Error())
		return
	}

	mood, err := h.petService.LogMood(petID, userID, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, mood)
}

// GET /api/moods/:petId
func (h *PetHandler) GetMoods(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	petID, ok := pathID(c, "petId")
	if !ok {
		return
	}

	moods, err := h.petService.GetMoods(petID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, moods)
}
