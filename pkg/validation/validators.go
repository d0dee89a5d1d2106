package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Letters (any script), combining marks, spaces and . ' -
	nameRegex = regexp.MustCompile(`^[\p{L}\p{M} .'-]+$`)

	// E164-like phone after separators are removed: optional +, 7-15 digits
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

	// Separators people type inside phone numbers
	phoneSeparators = regexp.MustCompile(`[\s().-]`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
}

// ValidName validates that a string contains only valid name characters
// Rejects digits and most special symbols
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// ValidPhone validates a phone number structure, ignoring spaces, dots, dashes and parentheses
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return IsPhone(val)
}

// IsPhone reports whether s looks like a phone number.
func IsPhone(s string) bool {
	return phoneRegex.MatchString(phoneSeparators.ReplaceAllString(s, ""))
}
