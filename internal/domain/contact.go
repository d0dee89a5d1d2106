package domain

import (
	"context"
	"strings"
)

// SubmissionInput is the raw, untrusted contact form payload.
// Website is the honeypot field and must stay empty.
type SubmissionInput struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Phone   string `json:"phone" form:"phone"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
	Website string `json:"website" form:"website"`
}

// Content returns the lowercased text the spam classifier inspects.
func (in *SubmissionInput) Content() string {
	return strings.ToLower(in.Name + " " + in.Email + " " + in.Subject + " " + in.Message)
}

// ValidatedSubmission is a submission that passed schema validation.
type ValidatedSubmission struct {
	Name    string `json:"name" validate:"required,min=2,max=100,valid_name"`
	Email   string `json:"email" validate:"required,max=254,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,valid_phone"`
	Subject string `json:"subject" validate:"required,min=3,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// FieldErrors maps a form field name to its human readable errors.
type FieldErrors map[string][]string

// Outcome discriminates how a submission left the pipeline.
type Outcome string

const (
	OutcomeSent             Outcome = "sent"
	OutcomeBotRejected      Outcome = "bot_rejected"
	OutcomeRateLimited      Outcome = "rate_limited"
	OutcomeSpamDetected     Outcome = "spam_detected"
	OutcomeValidationFailed Outcome = "validation_failed"
	OutcomeDispatchFailed   Outcome = "dispatch_failed"
	// A collaborator panicked; the submission was rejected without sending
	OutcomeInternalError Outcome = "internal_error"
)

// User facing messages for each outcome.
const (
	MessageSent             = "Thank you for your message! I'll get back to you soon."
	MessageBotRejected      = "Spam detected. Please contact me directly."
	MessageRateLimited      = "Too many requests. Please try again later."
	MessageSpamDetected     = "Message appears to be spam. Please contact me directly."
	MessageValidationFailed = "Please fix the errors below"
	MessageDispatchFailed   = "Failed to send message. Please try again later."
	MessageInternalError    = "Something went wrong. Please try again later."
)

// SubmissionResult is the terminal result of one pipeline run.
type SubmissionResult struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Errors  FieldErrors `json:"errors,omitempty"`
	Outcome Outcome     `json:"-"`
}

// Succeeded builds the confirmation result.
func Succeeded() *SubmissionResult {
	return &SubmissionResult{Success: true, Message: MessageSent, Outcome: OutcomeSent}
}

// Failed builds a failure result for the given outcome.
func Failed(outcome Outcome, errs FieldErrors) *SubmissionResult {
	return &SubmissionResult{
		Success: false,
		Message: outcomeMessage(outcome),
		Errors:  errs,
		Outcome: outcome,
	}
}

func outcomeMessage(o Outcome) string {
	switch o {
	case OutcomeSent:
		return MessageSent
	case OutcomeBotRejected:
		return MessageBotRejected
	case OutcomeRateLimited:
		return MessageRateLimited
	case OutcomeSpamDetected:
		return MessageSpamDetected
	case OutcomeValidationFailed:
		return MessageValidationFailed
	case OutcomeInternalError:
		return MessageInternalError
	default:
		return MessageDispatchFailed
	}
}

// RateLimiter decides whether a client may submit right now.
// Implementations must never fail; they admit or deny.
type RateLimiter interface {
	Admit(ctx context.Context, key string) bool
}

// SpamClassifier flags content that looks like spam. It must be deterministic.
type SpamClassifier interface {
	IsSpam(content string) bool
}

// SubmissionValidator turns raw input into a ValidatedSubmission or field errors.
type SubmissionValidator interface {
	Validate(in *SubmissionInput) (*ValidatedSubmission, FieldErrors)
}

// EmailDispatcher delivers a validated submission to the site owner.
type EmailDispatcher interface {
	SendContactEmail(ctx context.Context, sub *ValidatedSubmission) error
}

// ContactUsecase runs the contact form pipeline.
type ContactUsecase interface {
	// Submit processes one submission from the given client identifier.
	Submit(ctx context.Context, clientID string, in *SubmissionInput) *SubmissionResult
	// Info returns the alternate contact channels.
	Info() *ContactInfo
}

// ContactInfo lists the channels shown next to the contact form.
type ContactInfo struct {
	Email    string       `json:"email,omitempty"`
	Phone    string       `json:"phone,omitempty"`
	Location string       `json:"location,omitempty"`
	Socials  []SocialLink `json:"socials,omitempty"`
}

// SocialLink is a named external profile.
type SocialLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}
