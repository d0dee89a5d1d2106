package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"portfolio-contact-api/internal/domain"
)

// FieldLabels maps JSON field names to user-friendly labels
var FieldLabels = map[string]string{
	"name":    "Name",
	"email":   "Email",
	"phone":   "Phone number",
	"subject": "Subject",
	"message": "Message",
}

// FormFieldKey is used when an error cannot be tied to a single field.
const FormFieldKey = "form"

// FormatFieldErrors converts validator errors to messages grouped by field.
// Every failing field gets at least one message.
func FormatFieldErrors(err error) domain.FieldErrors {
	out := domain.FieldErrors{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		out[FormFieldKey] = []string{"The form could not be validated"}
		return out
	}

	for _, e := range validationErrors {
		field := e.Field()
		out[field] = append(out[field], formatSingleError(e))
	}

	return out
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, param)

	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, param)

	case "email":
		return "Please enter a valid email address"

	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces, and . ' -", label)

	case "valid_phone":
		return "Please enter a valid phone number"

	default:
		// Fallback for unknown tags
		return fmt.Sprintf("%s is invalid", label)
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}
