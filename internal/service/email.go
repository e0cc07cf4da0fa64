package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"marketplace-admin-backend/internal/logger"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
	send     func(m *gomail.Message) error
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	s := &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
	s.send = func(m *gomail.Message) error {
		return gomail.NewDialer(s.host, s.port, s.username, s.password).DialAndSend(m)
	}
	return s
}

func (s *emailService) SendAccountStatusNotification(ctx context.Context, email, name, status, reason string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Account Status Update")

	body := fmt.Sprintf("Hello %s,\n\nYour marketplace account has been %s.", name, status)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nBest regards,\nThe Marketplace Team"
	m.SetBody("text/plain", body)

	logger.ExternalServiceCall("smtp", "SendAccountStatusNotification", "to", email, "status", status)
	err := s.send(m)
	logger.ExternalServiceResult("smtp", "SendAccountStatusNotification", err, "to", email)
	if err != nil {
		return fmt.Errorf("failed to send account status notification: %w", err)
	}
	return nil
}
