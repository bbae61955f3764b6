package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"jobportal_backend/internal/models"
)

// SMTPProvider sends mail through an SMTP relay via gomail.
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(config *SMTPConfig) *SMTPProvider {
	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (p *SMTPProvider) Send(email *Email) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)
	m.SetBody("text/plain", email.Body)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendInterviewInvite(to string, job *models.Job, details models.InterviewDetails) error {
	subject, body := interviewInvite(job, details)
	return p.Send(&Email{To: []string{to}, Subject: subject, Body: body})
}

func (p *SMTPProvider) SendStatusUpdate(to string, job *models.Job, status models.ApplicationStatus) error {
	subject, body := statusUpdate(job, status)
	return p.Send(&Email{To: []string{to}, Subject: subject, Body: body})
}
