package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailSender interface {
	SendWelcomeEmail(email, name string) error
	SendApprovalRequest(to []string, projectID int, leadName, salesName string) error
}

type emailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailSender(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailSender {
	return &emailSender{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
	}
}

func (s *emailSender) SendWelcomeEmail(email, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome aboard")

	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your CRM account has been created.</p>
		<p>You can now log in and start registering leads.</p>
	`, name)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send welcome email: %w", err)
	}
	return nil
}

func (s *emailSender) SendApprovalRequest(to []string, projectID int, leadName, salesName string) error {
	if len(to) == 0 {
		return nil
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", fmt.Sprintf("Project #%d is waiting for approval", projectID))

	body := fmt.Sprintf(`
		<h3>Approval needed</h3>
		<p>Project <strong>#%d</strong> for lead <strong>%s</strong> contains items below catalog price.</p>
		<p>Submitted by %s. Please review it in the CRM.</p>
	`, projectID, leadName, salesName)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send approval request: %w", err)
	}
	return nil
}
