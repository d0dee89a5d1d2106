package usecase

import (
	"context"
	"log/slog"
	"sort"

	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/pkg/metrics"
	"portfolio-contact-api/pkg/ratelimit"
	"portfolio-contact-api/pkg/security"
	"portfolio-contact-api/pkg/spam"
)

// ContactDeps are the collaborators of the contact pipeline. Honeypot,
// SecurityLog, Logger and Info are optional.
type ContactDeps struct {
	Honeypot    func(value string) bool
	RateLimiter domain.RateLimiter
	Spam        domain.SpamClassifier
	Validator   domain.SubmissionValidator
	Dispatcher  domain.EmailDispatcher
	SecurityLog *security.SecurityLogger
	Logger      *slog.Logger
	Info        domain.ContactInfo
}

type contactUsecase struct {
	honeypot    func(string) bool
	limiter     domain.RateLimiter
	spam        domain.SpamClassifier
	validator   domain.SubmissionValidator
	dispatcher  domain.EmailDispatcher
	securityLog *security.SecurityLogger
	log         *slog.Logger
	info        domain.ContactInfo
}

// NewContactUsecase creates a new contact usecase
func NewContactUsecase(deps ContactDeps) domain.ContactUsecase {
	uc := &contactUsecase{
		honeypot:    deps.Honeypot,
		limiter:     deps.RateLimiter,
		spam:        deps.Spam,
		validator:   deps.Validator,
		dispatcher:  deps.Dispatcher,
		securityLog: deps.SecurityLog,
		log:         deps.Logger,
		info:        deps.Info,
	}
	if uc.honeypot == nil {
		uc.honeypot = spam.IsHoneypotFilled
	}
	if uc.log == nil {
		uc.log = slog.Default()
	}
	return uc
}

// Submit runs honeypot, rate limit, spam and schema checks in that order and
// sends the email only when all of them pass. Every failure becomes a result.
func (uc *contactUsecase) Submit(ctx context.Context, clientID string, in *domain.SubmissionInput) (result *domain.SubmissionResult) {
	if in == nil {
		in = &domain.SubmissionInput{}
	}
	if clientID == "" {
		clientID = ratelimit.SharedKey
	}

	stage := "honeypot"
	defer func() {
		// Fail closed: a panicking collaborator rejects the submission
		if r := recover(); r != nil {
			uc.log.Error("contact pipeline panicked",
				"stage", stage,
				"panic", r,
				"request_id", domain.StringFromContext(ctx, domain.KeyRequestID),
			)
			result = domain.Failed(domain.OutcomeInternalError, nil)
		}
		metrics.ContactSubmissionsTotal.WithLabelValues(string(result.Outcome)).Inc()
	}()

	if uc.honeypot(in.Website) {
		uc.audit(ctx, security.EventBotRejected, in.Email, nil)
		return domain.Failed(domain.OutcomeBotRejected, nil)
	}

	stage = "rate_limit"
	if uc.limiter != nil && !uc.limiter.Admit(ctx, clientID) {
		uc.audit(ctx, security.EventRateLimitTriggered, "", map[string]interface{}{"client": clientID})
		return domain.Failed(domain.OutcomeRateLimited, nil)
	}

	stage = "spam"
	if uc.spam != nil && uc.spam.IsSpam(in.Content()) {
		uc.audit(ctx, security.EventSpamDetected, in.Email, nil)
		return domain.Failed(domain.OutcomeSpamDetected, nil)
	}

	stage = "validation"
	sub, fieldErrs := uc.validator.Validate(in)
	if len(fieldErrs) > 0 || sub == nil {
		uc.audit(ctx, security.EventValidationFailed, "", map[string]interface{}{"fields": fieldNames(fieldErrs)})
		return domain.Failed(domain.OutcomeValidationFailed, fieldErrs)
	}

	stage = "dispatch"
	// The email is sent at most once and is not aborted when the client goes away
	if err := uc.dispatcher.SendContactEmail(context.WithoutCancel(ctx), sub); err != nil {
		uc.log.Error("Failed to send contact email",
			"error", err,
			"request_id", domain.StringFromContext(ctx, domain.KeyRequestID),
		)
		uc.audit(ctx, security.EventDispatchFailed, sub.Email, nil)
		return domain.Failed(domain.OutcomeDispatchFailed, nil)
	}

	uc.log.Info("Contact message sent", "request_id", domain.StringFromContext(ctx, domain.KeyRequestID))
	uc.audit(ctx, security.EventSubmissionAccepted, sub.Email, nil)
	return domain.Succeeded()
}

// Info returns the alternate contact channels.
func (uc *contactUsecase) Info() *domain.ContactInfo {
	info := uc.info
	info.Socials = append([]domain.SocialLink(nil), uc.info.Socials...)
	return &info
}

func (uc *contactUsecase) audit(ctx context.Context, event security.EventType, email string, details map[string]interface{}) {
	if uc.securityLog == nil {
		return
	}
	uc.securityLog.LogContactEvent(ctx, event, email,
		domain.StringFromContext(ctx, domain.KeyClientIP),
		domain.StringFromContext(ctx, domain.KeyUserAgent),
		domain.StringFromContext(ctx, domain.KeyRequestID),
		details,
	)
}

func fieldNames(errs domain.FieldErrors) []string {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
