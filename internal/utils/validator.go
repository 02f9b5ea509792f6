// internal/utils/validator.go
package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("pet_mood", validatePetMood)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePetMood(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "Happy", "Playful", "Sleepy", "Anxious", "Hungry":
		return true
	}
	return false
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param() + " characters"
	case "max":
		return e.Field() + " must be at most " + e.Param() + " characters"
	case "hexcolor":
		return e.Field() + " must be a hex color"
	case "pet_mood":
		return "Mood must be one of Happy, Playful, Sleepy, Anxious, Hungry"
	default:
		return e.Field() + " is invalid"
	}
}
