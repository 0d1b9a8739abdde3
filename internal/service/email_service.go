package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vhvplatform/go-permit-notification-service/internal/shared/errors"
	"github.com/vhvplatform/go-permit-notification-service/internal/shared/logger"
	"github.com/vhvplatform/go-permit-notification-service/internal/smtp"
)

// Sender sends one rendered message to one recipient and reports the
// assigned message ID. Implementations are safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, to, subject, html string) (string, error)
}

// EmailConfig holds the sender identity for outgoing mail.
type EmailConfig struct {
	FromEmail string
	FromName  string
}

// EmailService is the SMTP-backed Sender.
type EmailService struct {
	pool   *smtp.Pool
	config EmailConfig
	log    *logger.Logger
}

// NewEmailService creates an SMTP-backed email sender on top of a connection
// pool.
func NewEmailService(pool *smtp.Pool, config EmailConfig, log *logger.Logger) *EmailService {
	return &EmailService{
		pool:   pool,
		config: config,
		log:    log,
	}
}

// Send delivers one HTML email to a single recipient. The transport applies
// no retry; a failed send is failed for good.
func (s *EmailService) Send(ctx context.Context, to, subject, html string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	messageID := uuid.New().String()
	message := s.buildMessage(to, subject, html, messageID)

	client, err := s.pool.Get()
	if err != nil {
		return "", errors.NewTransportError("failed to acquire SMTP connection", err)
	}

	if err := client.Mail(s.config.FromEmail); err != nil {
		client.Quit()
		return "", errors.NewTransportError("failed to set sender", err)
	}
	if err := client.Rcpt(to); err != nil {
		client.Quit()
		return "", errors.NewTransportError("failed to set recipient", err)
	}
	w, err := client.Data()
	if err != nil {
		client.Quit()
		return "", errors.NewTransportError("failed to open data writer", err)
	}
	if _, err := w.Write([]byte(message)); err != nil {
		w.Close()
		client.Quit()
		return "", errors.NewTransportError("failed to write message", err)
	}
	if err := w.Close(); err != nil {
		client.Quit()
		return "", errors.NewTransportError("failed to finish message", err)
	}

	s.pool.Put(client)
	return messageID, nil
}

// Verify checks connectivity and credentials against the SMTP endpoint. It is
// a startup diagnostic only; send outcomes do not depend on it.
func (s *EmailService) Verify() error {
	return s.pool.Verify()
}

// buildMessage assembles the raw RFC 822 message.
func (s *EmailService) buildMessage(to, subject, html, messageID string) string {
	from := s.config.FromEmail
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}

	return fmt.Sprintf("From: %s\r\n"+
		"To: %s\r\n"+
		"Subject: %s\r\n"+
		"Message-ID: <%s@permit-notify>\r\n"+
		"MIME-Version: 1.0\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s",
		from, to, subject, messageID, html)
}
