package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vhvplatform/go-permit-notification-service/internal/shared/logger"
)

func TestBuildMessage(t *testing.T) {
	s := NewEmailService(nil, EmailConfig{
		FromEmail: "noreply@permit-system.local",
		FromName:  "Permit System",
	}, logger.NewNop())

	msg := s.buildMessage("a@x.com", "New Work Permit Request - PTW-1001", "<p>body</p>", "abc-123")

	assert.Contains(t, msg, "From: Permit System <noreply@permit-system.local>\r\n")
	assert.Contains(t, msg, "To: a@x.com\r\n")
	assert.Contains(t, msg, "Subject: New Work Permit Request - PTW-1001\r\n")
	assert.Contains(t, msg, "Message-ID: <abc-123@permit-notify>\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.Contains(t, msg, "\r\n\r\n<p>body</p>")
}

func TestBuildMessageWithoutFromName(t *testing.T) {
	s := NewEmailService(nil, EmailConfig{FromEmail: "ops@plant.com"}, logger.NewNop())

	msg := s.buildMessage("a@x.com", "subject", "body", "id-1")
	assert.Contains(t, msg, "From: ops@plant.com\r\n")
}
