package email

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/pkg/circuitbreaker"
	"portfolio-contact-api/pkg/metrics"
)

var (
	// ErrNotConfigured means the transport or recipient is missing.
	ErrNotConfigured = errors.New("email service is not configured")

	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")
)

// Message is a fully prepared email ready for a transport.
type Message struct {
	From    string // Overrides the transport's default sender when set
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers a prepared Message.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// configurable is implemented by senders that can report missing credentials.
type configurable interface {
	IsConfigured() bool
}

// Config holds the contact routing for a Dispatcher.
type Config struct {
	To      string        // Fixed recipient of every contact email
	Timeout time.Duration // Upper bound for a single delivery attempt
}

// DefaultTimeout bounds a delivery when Config.Timeout is not set.
const DefaultTimeout = 10 * time.Second

// Dispatcher renders contact submissions and hands them to a Sender exactly once.
type Dispatcher struct {
	sender  Sender
	to      string
	timeout time.Duration
	breaker *circuitbreaker.Wrapper
}

// NewDispatcher creates a dispatcher. breaker may be nil.
func NewDispatcher(sender Sender, cfg Config, breaker *circuitbreaker.Wrapper) *Dispatcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{
		sender:  sender,
		to:      strings.TrimSpace(cfg.To),
		timeout: timeout,
		breaker: breaker,
	}
}

// IsConfigured checks that a recipient and a usable transport are present.
func (d *Dispatcher) IsConfigured() bool {
	if d.sender == nil || d.to == "" {
		return false
	}
	if c, ok := d.sender.(configurable); ok {
		return c.IsConfigured()
	}
	return true
}

// SendContactEmail sends a contact form email to the configured recipient
func (d *Dispatcher) SendContactEmail(ctx context.Context, sub *domain.ValidatedSubmission) error {
	if !d.IsConfigured() {
		return ErrNotConfigured
	}

	msg, err := BuildContactMessage(d.to, sub)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	send := func(ctx context.Context) error {
		return d.sender.Send(ctx, msg)
	}
	if d.breaker != nil {
		err = d.breaker.Do(ctx, send)
	} else {
		err = send(ctx)
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	metrics.ContactDispatchDuration.WithLabelValues(status).Observe(float64(time.Since(start).Milliseconds()))

	if err != nil {
		return fmt.Errorf("failed to send contact email: %w", err)
	}
	return nil
}
