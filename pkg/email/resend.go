package email

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/resend/resend-go/v3"
)

// ResendConfig holds Resend email provider configuration.
type ResendConfig struct {
	APIKey      string
	SenderEmail string
	SenderName  string
}

// ResendSender implements Sender using the Resend API.
type ResendSender struct {
	client *resend.Client
	cfg    ResendConfig
}

// NewResendSender creates a new Resend sender.
func NewResendSender(cfg ResendConfig) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(cfg.APIKey),
		cfg:    cfg,
	}
}

// IsConfigured checks the API key and verified sender are present.
func (s *ResendSender) IsConfigured() bool {
	return s.cfg.APIKey != "" && s.cfg.SenderEmail != ""
}

// Send implements Sender.
func (s *ResendSender) Send(ctx context.Context, msg *Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipient
	}

	req := &resend.SendEmailRequest{
		From:    s.from(msg),
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}
	return nil
}

func (s *ResendSender) from(msg *Message) string {
	if msg.From != "" {
		return msg.From
	}
	if s.cfg.SenderName != "" {
		return (&mail.Address{Name: s.cfg.SenderName, Address: s.cfg.SenderEmail}).String()
	}
	return s.cfg.SenderEmail
}
