package mailer

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"github.com/logysma/logysma-backend/pkg/config"
)

// Sender delivers a single HTML mail. Callers treat delivery as best-effort:
// a failed send is logged by the caller, never surfaced to end users.
type Sender interface {
	Send(ctx context.Context, recipient, subject, htmlBody string) error
}

// SMTPSender speaks plain SMTP with optional AUTH.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// New returns an SMTP sender, or a no-op sender when mail is not configured.
func New(cfg config.SMTPConfig) Sender {
	if !cfg.Enabled() {
		return noopSender{}
	}
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(ctx context.Context, recipient, subject, htmlBody string) error {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return fmt.Errorf("mail recipient is required")
	}

	addr := net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port))

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	msg := s.buildMessage(recipient, subject, htmlBody)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(addr, auth, s.cfg.From, []string{recipient}, msg)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	}
}

func (s *SMTPSender) buildMessage(recipient, subject, htmlBody string) []byte {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", mime.QEncoding.Encode("utf-8", s.cfg.FromName), s.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	// non-ASCII subjects need RFC 2047 encoding for strict clients
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")
	return []byte(msg.String())
}

type noopSender struct{}

func (noopSender) Send(context.Context, string, string, string) error {
	return nil
}
