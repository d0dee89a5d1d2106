package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"portfolio-contact-api/internal/domain"
	"portfolio-contact-api/pkg/sanitizer"
)

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Phone       string
	Subject     string
	Message     string
}

// contactHTMLTemplate is the HTML template for contact form emails
const contactHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Contact Form Submission</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #111827; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #111827; margin-top: 10px; white-space: pre-wrap; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>New Contact Form Submission</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">From:</div>
                <div>{{.SenderName}} ({{.SenderEmail}})</div>
            </div>
            {{- if .Phone}}
            <div class="field">
                <div class="label">Phone:</div>
                <div>{{.Phone}}</div>
            </div>
            {{- end}}
            <div class="field">
                <div class="label">Subject:</div>
                <div>{{.Subject}}</div>
            </div>
            <div class="field">
                <div class="label">Message:</div>
                <div class="message-box">{{.Message}}</div>
            </div>
        </div>
        <div class="footer">
            <p>This email was sent from the portfolio contact form.</p>
            <p>Reply directly to reach {{.SenderEmail}}.</p>
        </div>
    </div>
</body>
</html>`

const contactTextTemplate = `New contact form submission

From: {{.SenderName}} <{{.SenderEmail}}>
{{- if .Phone}}
Phone: {{.Phone}}
{{- end}}
Subject: {{.Subject}}

{{.Message}}
`

var (
	htmlTmpl = htmltemplate.Must(htmltemplate.New("contact_html").Parse(contactHTMLTemplate))
	textTmpl = texttemplate.Must(texttemplate.New("contact_text").Parse(contactTextTemplate))

	headerSafe = strings.NewReplacer("\r", " ", "\n", " ")
)

// BuildContactMessage renders the owner notification for a validated submission.
func BuildContactMessage(to string, sub *domain.ValidatedSubmission) (*Message, error) {
	if strings.TrimSpace(to) == "" {
		return nil, ErrNoRecipient
	}

	data := ContactEmailData{
		SenderName:  sanitizer.StripHTML(sub.Name),
		SenderEmail: sub.Email,
		Phone:       sanitizer.StripHTML(sub.Phone),
		Subject:     sanitizer.StripHTML(sub.Subject),
		Message:     sanitizer.StripHTML(sub.Message),
	}

	var html, text bytes.Buffer
	if err := htmlTmpl.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}
	if err := textTmpl.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("failed to execute email text template: %w", err)
	}

	return &Message{
		To:      []string{to},
		ReplyTo: headerSafe.Replace(sub.Email),
		Subject: headerSafe.Replace(fmt.Sprintf("Contact Form: %s", data.Subject)),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
