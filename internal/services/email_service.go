package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends reminder emails through SendGrid.
type EmailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	timeout   time.Duration
}

// NewEmailService creates a SendGrid-backed email sender. The client is
// constructed once here and owned by the composition root, not cached
// lazily at first use.
func NewEmailService(apiKey, fromEmail, fromName string, timeout time.Duration) *EmailService {
	return &EmailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
		timeout:   timeout,
	}
}

// SendReminder delivers a rendered reminder message to a client mailbox.
// The call is bounded by the configured timeout; a timeout counts as a
// channel failure like any other error.
func (s *EmailService) SendReminder(ctx context.Context, toEmail, toName, clientName, description string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	subject := fmt.Sprintf("Recordatorio del estudio para %s", clientName)
	htmlContent := fmt.Sprintf("<p>%s</p>", description)

	message := mail.NewSingleEmail(from, subject, to, description, htmlContent)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", toEmail, err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email to %s: status %d", toEmail, response.StatusCode)
	}
	return nil
}
