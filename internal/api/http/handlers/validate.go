package handlers

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/spec-kit/support-message-service/pkg/util"
)

var validate = validator.New()

// validateStruct runs tag validation and converts failures into a
// field-level validation error.
func validateStruct(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	details := make(map[string]any, len(invalid))
	for _, fieldErr := range invalid {
		details[strings.ToLower(fieldErr.Field())] = validationMessage(fieldErr)
	}
	return apperrors.NewValidationError("invalid payload", details)
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fieldErr.Param() + " characters"
	case "max":
		return "must be at most " + fieldErr.Param() + " characters"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fieldErr.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}
