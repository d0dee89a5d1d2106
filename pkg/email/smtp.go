package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"mime"
	"mime/multipart"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"
)

// SMTPConfig holds SMTP relay settings.
type SMTPConfig struct {
	Host      string
	Port      string
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPSender delivers mail through an SMTP relay, upgrading with STARTTLS
// when offered and using implicit TLS on port 465.
type SMTPSender struct {
	cfg SMTPConfig
	now func() time.Time
}

// NewSMTPSender creates an SMTP transport.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.FromEmail == "" {
		cfg.FromEmail = cfg.Username
	}
	return &SMTPSender{cfg: cfg, now: time.Now}
}

// IsConfigured checks if the sender has valid SMTP configuration
func (s *SMTPSender) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Port != "" && s.cfg.FromEmail != ""
}

// Send implements Sender. The whole conversation is bounded by ctx's deadline.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	if len(msg.To) == 0 {
		return ErrNoRecipient
	}

	from := s.cfg.FromEmail
	raw, err := s.buildMIME(msg)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)
	conn, err := s.dial(ctx, addr)
	if err != nil {
		return fmt.Errorf("smtp: dial %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp: handshake: %w", err)
	}
	defer c.Close()

	if _, isTLS := conn.(*tls.Conn); !isTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}); err != nil {
				return fmt.Errorf("smtp: starttls: %w", err)
			}
		}
	}

	if s.cfg.Username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
				return fmt.Errorf("smtp: auth: %w", err)
			}
		}
	}

	if err := c.Mail(from); err != nil {
		return fmt.Errorf("smtp: mail from: %w", err)
	}
	for _, rcpt := range msg.To {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp: rcpt %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp: data: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		_ = w.Close()
		return fmt.Errorf("smtp: write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp: message rejected: %w", err)
	}

	return c.Quit()
}

func (s *SMTPSender) dial(ctx context.Context, addr string) (net.Conn, error) {
	d := &net.Dialer{}
	if s.cfg.Port == "465" {
		td := &tls.Dialer{
			NetDialer: d,
			Config:    &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12},
		}
		return td.DialContext(ctx, "tcp", addr)
	}
	return d.DialContext(ctx, "tcp", addr)
}

// buildMIME renders msg as a multipart/alternative message with text and HTML parts.
func (s *SMTPSender) buildMIME(msg *Message) ([]byte, error) {
	from := msg.From
	if from == "" {
		from = (&mail.Address{Name: s.cfg.FromName, Address: s.cfg.FromEmail}).String()
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	parts := []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=UTF-8", msg.Text},
		{"text/html; charset=UTF-8", msg.HTML},
	}
	for _, p := range parts {
		if p.content == "" {
			continue
		}
		pw, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {p.contentType},
			"Content-Transfer-Encoding": {"8bit"},
		})
		if err != nil {
			return nil, fmt.Errorf("smtp: build part: %w", err)
		}
		if _, err := pw.Write([]byte(normalizeNewlines(p.content))); err != nil {
			return nil, fmt.Errorf("smtp: build part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("smtp: build message: %w", err)
	}

	var buf bytes.Buffer
	writeHeader := func(k, v string) {
		buf.WriteString(k + ": " + headerSafe.Replace(v) + "\r\n")
	}
	writeHeader("From", from)
	writeHeader("To", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		writeHeader("Reply-To", msg.ReplyTo)
	}
	writeHeader("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader("Date", s.now().Format(time.RFC1123Z))
	writeHeader("MIME-Version", "1.0")
	writeHeader("Content-Type", "multipart/alternative; boundary="+mw.Boundary())
	buf.WriteString("\r\n")
	buf.Write(body.Bytes())

	return buf.Bytes(), nil
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}
