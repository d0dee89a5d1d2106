package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"portfolio-contact-api/internal/domain"
)

// ContactValidator validates contact form submissions.
type ContactValidator struct {
	validate *validator.Validate
}

// NewContactValidator builds a validator that reports errors under JSON field names.
func NewContactValidator() *ContactValidator {
	v := validator.New()
	RegisterValidators(v)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ContactValidator{validate: v}
}

// Validate trims the raw fields and checks them against the submission schema.
func (cv *ContactValidator) Validate(in *domain.SubmissionInput) (*domain.ValidatedSubmission, domain.FieldErrors) {
	sub := &domain.ValidatedSubmission{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}

	if err := cv.validate.Struct(sub); err != nil {
		return nil, FormatFieldErrors(err)
	}
	return sub, nil
}
