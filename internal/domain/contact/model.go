package contact

import (
	"errors"
	"net/mail"
	"strings"
	"time"
)

// Status constants for submission lifecycle.
const (
	StatusReceived = "received"
	StatusSent     = "sent"
	StatusFailed   = "failed"
)

// Subject is the fixed subject line of every relayed message.
const Subject = "Message received from website feedback form"

// Domain errors
var (
	ErrEmptyMessage   = errors.New("message is required")
	ErrInvalidReplyTo = errors.New("reply-to must be a single email address")
)

// Submission is a message left through the website feedback form.
// INVARIANT: Name and ReplyTo are optional; Message is never blank once validated.
type Submission struct {
	ID          string
	Name        string
	ReplyTo     string
	Message     string
	Status      string
	MessageID   string // Provider message ID once dispatched
	SubmittedAt time.Time
}

// Validate checks that the submission can be relayed.
// PRE: Submission struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Submission) Validate() error {
	if strings.TrimSpace(s.Message) == "" {
		return ErrEmptyMessage
	}
	if s.ReplyTo != "" {
		addr, err := mail.ParseAddress(s.ReplyTo)
		if err != nil || addr.Address != s.ReplyTo {
			return ErrInvalidReplyTo
		}
	}
	if s.SubmittedAt.IsZero() {
		return errors.New("submitted_at must be set")
	}
	return nil
}

// Body composes the relayed email text.
// Anonymous senders get a generic introduction instead of their name.
func (s *Submission) Body() string {
	var b strings.Builder
	if s.Name != "" {
		b.WriteString("The following message was received from ")
		b.WriteString(s.Name)
		b.WriteString(" via the club website's feedback form: \n\n")
	} else {
		b.WriteString("The following message was received via the club website's feedback form:\n\n")
	}
	b.WriteString(s.Message)
	return b.String()
}

// HasReplyTo reports whether the sender left an address to answer.
// INVARIANT: ReplyTo field is not mutated
func (s *Submission) HasReplyTo() bool {
	return s.ReplyTo != ""
}

// MarkSent records a successful dispatch.
// PRE: Submission has been validated
// POST: Status is sent and MessageID is set
func (s *Submission) MarkSent(messageID string) {
	s.Status = StatusSent
	s.MessageID = messageID
}

// MarkFailed records that the mail transport rejected the message.
// POST: Status is failed
func (s *Submission) MarkFailed() {
	s.Status = StatusFailed
}
