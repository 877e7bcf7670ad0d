package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/smtp"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MockSender acknowledges without delivering. Used when SMTP is not
// configured, so load operations keep working in dev environments.
type MockSender struct {
	logger *zap.Logger
}

func NewMockSender(logger *zap.Logger) *MockSender {
	return &MockSender{logger: logger}
}

func (s *MockSender) Send(_ context.Context, msg Message) (string, error) {
	s.logger.Warn("SMTP not configured, email not sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return "mock-message-id", nil
}

// SMTPSender delivers through a plain SMTP endpoint.
type SMTPSender struct {
	host        string
	port        int
	username    string
	password    string
	senderName  string
	senderEmail string
}

func NewSMTPSender(host string, port int, username, password, senderName, senderEmail string) *SMTPSender {
	return &SMTPSender{
		host:        host,
		port:        port,
		username:    username,
		password:    password,
		senderName:  senderName,
		senderEmail: senderEmail,
	}
}

func (s *SMTPSender) Send(_ context.Context, msg Message) (string, error) {
	messageID := uuid.NewString()
	body := s.buildMIME(msg, messageID)

	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	if err := smtp.SendMail(addr, auth, s.senderEmail, []string{msg.To}, body); err != nil {
		return "", fmt.Errorf("smtp send failed: %w", err)
	}
	return messageID, nil
}

func (s *SMTPSender) buildMIME(msg Message, messageID string) []byte {
	const boundary = "dth-release-boundary"

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Message-ID: <%s@%s>\r\n", messageID, s.host)
	fmt.Fprintf(&buf, "From: %s <%s>\r\n", s.senderName, s.senderEmail)
	fmt.Fprintf(&buf, "To: %s\r\n", msg.To)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	fmt.Fprintf(&buf, "Content-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&buf, "%s\r\n", msg.Body)

	for _, attachment := range msg.Attachments {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		fmt.Fprintf(&buf, "Content-Type: application/octet-stream\r\n")
		fmt.Fprintf(&buf, "Content-Transfer-Encoding: base64\r\n")
		fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n\r\n", attachment.Filename)
		fmt.Fprintf(&buf, "%s\r\n", base64.StdEncoding.EncodeToString(attachment.Content))
	}
	fmt.Fprintf(&buf, "--%s--\r\n", boundary)

	return buf.Bytes()
}
