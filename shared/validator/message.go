package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	messages = map[string]string{
		"required":      "{field} is required",
		"gt":            "{field} must be greater than {param}",
		"gte":           "{field} must be greater than or equal to {param}",
		"lte":           "{field} must be less than or equal to {param}",
		"oneof":         "{field} must be one of {param}",
		"max":           "{field} must be less than or equal to {param}",
		"min":           "{field} must be greater than or equal to {param}",
		"email":         "{field} must be a valid email address",
		"datetime":      "{field} must be a date in {param} format",
		"booking_email": "Invalid email address",
		"booking_phone": "Invalid phone number",
		"contact_email": "Please enter a valid email",
		"zip_code":      "Please enter a valid ZIP code",
		"clock":         "{field} must be a time in HH:MM format",
		"mimetypes":     "{field} must be one of {param}",
		"maxfilesize":   "{field} must not exceed {param} MB",
	}
)

func render(valErr val.FieldError) string {
	errStr := messages[valErr.Tag()]
	if errStr == "" {
		return valErr.Error()
	}

	errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())

	return strings.ReplaceAll(errStr, "{param}", valErr.Param())
}

func fieldMessages(err error) map[string]string {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return map[string]string{"": err.Error()}
	}

	fields := make(map[string]string, len(valErrors))
	for _, valErr := range valErrors {
		if _, ok := fields[valErr.Field()]; ok {
			continue
		}

		fields[valErr.Field()] = render(valErr)
	}

	return fields
}

func message(err error) string {
	var valErrors val.ValidationErrors

	if errors.As(err, &valErrors) {
		for _, valErr := range valErrors {
			if messages[valErr.Tag()] != "" {
				return render(valErr)
			}
		}

		return valErrors.Error()
	}

	return err.Error()
}
