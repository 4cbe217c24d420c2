package service

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/grupi2/calorie-tracker/backend/config"
)

type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUsername: cfg.SMTPUsername,
		smtpPassword: cfg.SMTPPassword,
		fromEmail:    cfg.EmailFrom,
	}
}

// SendEmail delivers a plain-text message over SMTP. When SMTP is not
// configured the message is logged instead, which keeps local development
// flows (confirmation codes, password reset) usable without a mail server.
func (s *EmailService) SendEmail(to, subject, body string) error {
	if s.smtpHost == "" {
		log.Printf("SMTP not configured, logging email instead: to=%s subject=%q", to, subject)
		log.Printf("email body: %s", body)
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.fromEmail, to, subject, body)

	addr := s.smtpHost + ":" + s.smtpPort
	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
