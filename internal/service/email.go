package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"registrar-portal-backend/internal/logger"
)

type emailService struct {
	apiKey   string
	from     string
	fromName string
	disabled bool
}

func NewEmailService(apiKey, from, fromName string, disabled bool) EmailService {
	return &emailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
		disabled: disabled,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	if s.disabled {
		logger.Debug("Email disabled, skipping send", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(toName, to)
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

func (s *emailService) SendScheduleNotice(ctx context.Context, email, name string, transactionID int32, scheduledFor time.Time) error {
	subject := fmt.Sprintf("Credential Request #%d Scheduled", transactionID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour credential request #%d has been scheduled for release on %s.\n\nBest regards,\nThe Registrar's Office",
		name, transactionID, scheduledFor.Format("January 2, 2006"))
	return s.send(email, name, subject, body)
}

func (s *emailService) SendClaimReceipt(ctx context.Context, email, name string, transactionID int32) error {
	subject := fmt.Sprintf("Credential Request #%d Claimed", transactionID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour credential request #%d has been claimed. This email serves as your receipt.\n\nBest regards,\nThe Registrar's Office",
		name, transactionID)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendRejectionNotice(ctx context.Context, email, name string, transactionID int32, remarks string) error {
	subject := fmt.Sprintf("Credential Request #%d Rejected", transactionID)
	body := fmt.Sprintf("Hello %s,\n\nYour credential request #%d has been rejected.", name, transactionID)
	if remarks != "" {
		body += fmt.Sprintf("\n\nReason: %s", remarks)
	}
	body += "\n\nPlease contact the Registrar's Office if you believe this is an error.\n\nBest regards,\nThe Registrar's Office"
	return s.send(email, name, subject, body)
}

func (s *emailService) SendUnclaimedReminder(ctx context.Context, email, name string, transactionID int32, readySince time.Time) error {
	subject := fmt.Sprintf("Reminder: Credential Request #%d Awaiting Pickup", transactionID)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour credential request #%d has been ready for pickup since %s. Please claim it at the Registrar's Office.\n\nBest regards,\nThe Registrar's Office",
		name, transactionID, readySince.Format("January 2, 2006"))
	return s.send(email, name, subject, body)
}

func (s *emailService) SendStaleSubmissionsReport(ctx context.Context, adminEmail string, transactionIDs []int32) error {
	ids := make([]string, len(transactionIDs))
	for i, id := range transactionIDs {
		ids[i] = fmt.Sprintf("#%d", id)
	}
	subject := fmt.Sprintf("%d stale credential requests need attention", len(transactionIDs))
	body := fmt.Sprintf(
		"The following requests have been sitting in Submitted without action:\n\n%s\n",
		strings.Join(ids, ", "))
	return s.send(adminEmail, "Registrar Admin", subject, body)
}
