package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"strings"

	"law_landing_go/config"
	"law_landing_go/models"

	"github.com/resend/resend-go/v2"
)

// Email represents an email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// noMessagePlaceholder is shown when the visitor left the message field empty
const noMessagePlaceholder = "לא צוינה הודעה"

var leadHTMLTemplate = template.Must(template.New("lead_html").Parse(`<div dir="rtl">
<h2>פנייה חדשה מהאתר</h2>
<p><strong>שם:</strong> {{.FromName}}</p>
<p><strong>טלפון:</strong> {{.FromPhone}}</p>
<p><strong>אימייל:</strong> {{.FromEmail}}</p>
<p><strong>הודעה:</strong></p>
<p>{{.Message}}</p>
</div>`))

var leadTextTemplate = template.Must(template.New("lead_text").Parse(
	"פנייה חדשה מהאתר\n\nשם: {{.FromName}}\nטלפון: {{.FromPhone}}\nאימייל: {{.FromEmail}}\n\nהודעה:\n{{.Message}}\n"))

// leadTemplateParams mirrors the relay template parameters:
// from_name, from_email, from_phone, message.
type leadTemplateParams struct {
	FromName  string
	FromEmail string
	FromPhone string
	Message   string
}

// BuildLeadNotificationEmail renders the new-lead notification for the firm
func BuildLeadNotificationEmail(cfg *config.Config, lead *models.Lead) (*Email, error) {
	params := leadTemplateParams{
		FromName:  lead.Name,
		FromEmail: lead.Email,
		FromPhone: lead.Phone,
		Message:   lead.Message,
	}
	if params.Message == "" {
		params.Message = noMessagePlaceholder
	}

	var htmlBuf, textBuf bytes.Buffer
	if err := leadHTMLTemplate.Execute(&htmlBuf, params); err != nil {
		return nil, fmt.Errorf("failed to render lead email: %w", err)
	}
	if err := leadTextTemplate.Execute(&textBuf, params); err != nil {
		return nil, fmt.Errorf("failed to render lead email: %w", err)
	}

	return &Email{
		To:       []string{cfg.LeadNotifyTo},
		Subject:  "פנייה חדשה מהאתר: " + lead.Name,
		HTMLBody: htmlBuf.String(),
		TextBody: textBuf.String(),
	}, nil
}

// SendEmail sends an email using Resend API
func SendEmail(cfg *config.Config, email *Email) error {
	// In development mode, log the email instead of sending
	if cfg.EmailTestMode {
		logEmailToConsole(email)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}
	if email.HTMLBody == "" && email.TextBody == "" {
		return fmt.Errorf("email must have either HTMLBody or TextBody")
	}

	client := resend.NewClient(cfg.ResendAPIKey)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	sent, err := client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	log.Printf("Email sent successfully via Resend (ID: %s) to: %v", sent.Id, email.To)
	return nil
}

// logEmailToConsole logs email details to console in development mode
func logEmailToConsole(email *Email) {
	separator := strings.Repeat("=", 80)
	log.Printf("\n%s\nEMAIL (Development Mode - Not Actually Sent)\n%s", separator, separator)
	log.Printf("To: %v", email.To)
	log.Printf("Subject: %s", email.Subject)
	log.Printf("\n--- TEXT BODY ---\n%s", email.TextBody)
	log.Printf("%s\n", separator)
}

// LeadMailer delivers lead notifications via the configured relay
type LeadMailer struct {
	cfg *config.Config
}

// NewLeadMailer creates a mailer bound to the loaded configuration
func NewLeadMailer(cfg *config.Config) *LeadMailer {
	return &LeadMailer{cfg: cfg}
}

// SendLeadNotification builds and sends the new-lead email
func (m *LeadMailer) SendLeadNotification(lead *models.Lead) error {
	email, err := BuildLeadNotificationEmail(m.cfg, lead)
	if err != nil {
		return err
	}
	return SendEmail(m.cfg, email)
}
