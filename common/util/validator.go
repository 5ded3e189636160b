package util

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct validates a struct using validator tags
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// GetValidationErrors formats validation errors into readable messages
func GetValidationErrors(err error) []string {
	var messages []string
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return messages
	}

	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		switch fieldError.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "required_if":
			param := strings.Fields(fieldError.Param())
			if len(param) > 0 {
				messages = append(messages, field+" is required when "+param[0]+" is set")
			} else {
				messages = append(messages, field+" is required")
			}
		case "email":
			messages = append(messages, field+" must be a valid email")
		case "min":
			messages = append(messages, field+" must be at least "+fieldError.Param())
		case "max":
			messages = append(messages, field+" must be at most "+fieldError.Param())
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	return messages
}
