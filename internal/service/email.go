package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendReturnFollowUpAlert(ctx context.Context, email, invoiceNo string, itemCount int, cause error) error {
	subject := fmt.Sprintf("Action needed: missing items not recorded for invoice %s", invoiceNo)
	body := fmt.Sprintf(
		"Returns for invoice %s were saved, but %d missing-item record(s) could not be saved (%v).\n\n"+
			"Please record the missing items manually from the order's return screen.",
		invoiceNo, itemCount, cause)
	return s.send(email, subject, body)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, invoiceNo, customerName, endDate string) error {
	subject := fmt.Sprintf("Overdue rental: invoice %s", invoiceNo)
	body := fmt.Sprintf(
		"The rental order for %s (invoice %s) passed its end date %s with items still outstanding.",
		customerName, invoiceNo, endDate)
	return s.send(email, subject, body)
}
