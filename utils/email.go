package utils

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional mail through SendGrid. When no API key is
// configured the service is disabled and every send becomes a no-op.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService reads SENDGRID_API_KEY and EMAIL_SENDER from the
// environment and returns a ready (possibly disabled) service.
func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		slog.Warn("SENDGRID_API_KEY not set, email notifications disabled")
		return &EmailService{}
	}
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

// SendEmail sends a plain-text email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, content string) error {
	if es.client == nil {
		return nil
	}
	from := mail.NewEmail("RasoiSetu", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, content, content)
	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: sendgrid responded %d", resp.StatusCode)
	}
	return nil
}

// SendStatusDecisionEmail notifies a seller that their application was
// approved or rejected. Other statuses send nothing.
func (es *EmailService) SendStatusDecisionEmail(toEmail, name, status string) error {
	subject := "Application Update - RasoiSetu"
	var content string
	switch status {
	case "approved":
		content = fmt.Sprintf("Dear %s,\n\nCongratulations! Your seller application has been approved. You can now log in to your dashboard.\n\nThe RasoiSetu Team\n", name)
	case "rejected":
		content = fmt.Sprintf("Dear %s,\n\nWe are sorry to inform you that your seller application has been rejected. Please contact support for more information.\n\nThe RasoiSetu Team\n", name)
	default:
		return nil
	}
	return es.SendEmail(toEmail, subject, content)
}
