// internal/handlers/common.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anenterprise-lab/pet-food-backend/internal/services"
	"github.com/anenterprise-lab/pet-food-backend/internal/utils"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var outOfStock *services.OutOfStockError
	var invalidState *services.InvalidStateError
	var authn *services.AuthenticationError
	var authz *services.AuthorizationError
	var validation *services.ValidationError

	switch {
	case errors.As(err, &notFound):
		utils.NotFoundResponse(c, notFound.Error())
	case errors.As(err, &outOfStock):
		utils.BadRequestResponse(c, outOfStock.Error(), nil)
	case errors.As(err, &invalidState):
		utils.BadRequestResponse(c, invalidState.Error(), nil)
	case errors.As(err, &authn):
		utils.UnauthorizedResponse(c, authn.Error())
	case errors.As(err, &authz):
		utils.ForbiddenResponse(c, authz.Error())
	case errors.As(err, &validation):
		utils.BadRequestResponse(c, validation.Error(), nil)
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}

// callerID extracts the authenticated user's id set by the auth middleware.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	return userID, true
}

// pathID parses a uuid path parameter, replying 400 on failure.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}
