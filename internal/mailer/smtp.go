package mailer

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gomail "gopkg.in/mail.v2"
)

type SMTPMailer struct {
	dialer    *gomail.Dialer
	fromEmail string
	backoff   time.Duration
}

func NewSMTPMailer(host string, port int, username, password, fromEmail string) (*SMTPMailer, error) {
	if host == "" {
		return nil, errors.New("smtp host is required")
	}
	if fromEmail == "" {
		return nil, errors.New("from email is required")
	}

	d := gomail.NewDialer(host, port, username, password)
	d.Timeout = 10 * time.Second

	return &SMTPMailer{dialer: d, fromEmail: fromEmail, backoff: time.Second}, nil
}

func (m *SMTPMailer) Send(templateFile, username, email string, data any) error {
	subject, body, err := Render(templateFile, data)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromEmail, FromName)
	msg.SetAddressHeader("To", email, username)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	for i := 0; i < maxRetries; i++ {
		if err = m.dialer.DialAndSend(msg); err == nil {
			return nil
		}
		// exponential backoff
		time.Sleep(m.backoff * time.Duration(1<<i))
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, err)
}

// LogMailer renders messages and writes them to the log instead of sending
// them. It is used when no SMTP server is configured.
type LogMailer struct {
	logger *zap.SugaredLogger
}

func NewLogMailer(logger *zap.SugaredLogger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(templateFile, username, email string, data any) error {
	subject, _, err := Render(templateFile, data)
	if err != nil {
		return err
	}
	m.logger.Infow("email not sent, no smtp server configured", "to", email, "subject", subject)
	return nil
}
