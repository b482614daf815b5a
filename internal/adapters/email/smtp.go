package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the connection settings for the host's mail relay.
type SMTPConfig struct {
	Host               string
	Port               int
	User               string
	Password           string
	From               string
	InsecureSkipVerify bool
}

// dialSender is the part of *gomail.Dialer used by SMTPSender.
type dialSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender sends emails through an SMTP relay.
type SMTPSender struct {
	dialer dialSender
	host   string
	from   string
}

// NewSMTPSender creates a sender that dials the relay once per message.
// PRE: cfg.Host is non-empty; cfg.From is a valid sender address
// POST: Returns a ready-to-use sender; no connection is opened yet
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	d := gomail.NewDialer(cfg.Host, port, cfg.User, cfg.Password)
	if cfg.InsecureSkipVerify {
		slog.Warn("smtp_insecure_skip_verify", "host", cfg.Host)
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true, ServerName: cfg.Host}
	}
	return &SMTPSender{dialer: d, host: cfg.Host, from: cfg.From}
}

// Send delivers a single plain-text email. There is no retry.
// PRE: req has at least one recipient and a subject
// POST: Message handed to the relay; returns the Message-ID header that was set
func (s *SMTPSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	if err := ctx.Err(); err != nil {
		return SendResult{}, err
	}

	msgID := fmt.Sprintf("<%s@%s>", uuid.New().String(), s.host)
	msg := buildMessage(req, fromOrDefault(req.From, s.from), msgID)

	if err := s.dialer.DialAndSend(msg); err != nil {
		slog.Error("smtp_send_failed", "error", err, "host", s.host, "subject", req.Subject)
		return SendResult{}, fmt.Errorf("smtp send failed: %w", err)
	}

	slog.Info("smtp_sent", "message_id", msgID, "host", s.host, "subject", req.Subject)
	return SendResult{
		MessageID: msgID,
		SentAt:    time.Now(),
	}, nil
}

// buildMessage maps a SendRequest onto a gomail message.
func buildMessage(req SendRequest, from, msgID string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", req.To...)
	msg.SetHeader("Subject", req.Subject)
	msg.SetHeader("Message-ID", msgID)
	if req.ReplyTo != "" {
		msg.SetHeader("Reply-To", req.ReplyTo)
	}
	msg.SetBody("text/plain", req.Text)
	return msg
}
