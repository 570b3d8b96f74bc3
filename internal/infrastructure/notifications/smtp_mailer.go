package notifications

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/you/accountsvc/domain"
)

// SMTPMailer implements domain.MailSender over an SMTP relay
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewSMTPMailer creates a new SMTP mailer. With an empty host the mailer
// logs messages instead of sending, which keeps local development working
// without a relay.
func NewSMTPMailer(host string, port int, username, password, from string, logger *zap.Logger) domain.MailSender {
	m := &SMTPMailer{from: from, logger: logger}
	if host != "" {
		m.dialer = gomail.NewDialer(host, port, username, password)
	}
	return m
}

// SendEmail implements domain.MailSender
func (m *SMTPMailer) SendEmail(to, subject, body string, html bool) error {
	if m.dialer == nil {
		m.logger.Info("mock email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.String("body", body))
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	if html {
		msg.SetBody("text/html", body)
	} else {
		msg.SetBody("text/plain", body)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
