package utils

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/yamboly/tutor-dashboard-service/internal/errors"
	"github.com/yamboly/tutor-dashboard-service/internal/models"
)

// Validator wraps go-playground/validator with the project's custom rules.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()
	RegisterCustomValidators(validate)
	return &Validator{validate: validate}
}

// Validate checks the struct and converts field errors into the shared
// ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if fieldErrors := apperrors.ToValidationErrors(err); len(fieldErrors) > 0 {
			return fieldErrors
		}
		return err
	}
	return nil
}

// Custom validation functions

// ValidateDifficultyLevel accepts the 1..5 scale the tutoring agent uses.
func ValidateDifficultyLevel(fl validator.FieldLevel) bool {
	value := fl.Field().Int()
	return value >= 1 && value <= 5
}

func ValidateUserRole(fl validator.FieldLevel) bool {
	validRoles := []models.UserRole{
		models.RoleStudent,
		models.RoleTeacher,
		models.RoleAdmin,
	}

	value := fl.Field().String()
	for _, validRole := range validRoles {
		if string(validRole) == value {
			return true
		}
	}
	return false
}

func ValidateMessageRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == string(models.MessageRoleUser) || value == string(models.MessageRoleAssistant)
}

// RegisterCustomValidators registers all custom validators
func RegisterCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("difficulty_level", ValidateDifficultyLevel)
	validate.RegisterValidation("user_role", ValidateUserRole)
	validate.RegisterValidation("message_role", ValidateMessageRole)

	// Register custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}
