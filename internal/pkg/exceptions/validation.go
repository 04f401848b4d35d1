package exceptions

import (
	"class-registration-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatAllValidationErrors(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return constvars.ErrDevInvalidInput
	}

	var errors []string
	for _, err := range validationErrors {
		fieldName := strings.ToLower(err.Field())
		tag := err.Tag()
		customMessage, ok := constvars.CustomValidationErrorMessages[tag]
		if !ok {
			customMessage = "is invalid"
		}
		if constvars.TagsWithParams[tag] {
			customMessage = substituteParam(tag, customMessage, err.Param())
		}
		errors = append(errors, fieldName+" "+customMessage)
	}
	return strings.Join(errors, ", ")
}

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		firstErr := validationErrors[0]
		fieldName := strings.ToLower(firstErr.Field())
		tag := firstErr.Tag()
		customMessage, ok := constvars.CustomValidationErrorMessages[tag]
		if tag == "phone_number" || tag == "not_future" {
			return customMessage
		}
		if !ok {
			customMessage = "is invalid"
		}

		if constvars.TagsWithParams[tag] {
			customMessage = substituteParam(tag, customMessage, firstErr.Param())
		}
		return fieldName + " " + customMessage
	}
	return constvars.ErrDevInvalidInput
}

func substituteParam(tag, message, param string) string {
	if tag == "oneof" {
		return strings.Replace(message, "%s", strings.Join(strings.Fields(param), ", "), 1)
	}
	return strings.Replace(message, "%s", param, 1)
}
