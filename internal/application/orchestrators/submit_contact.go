package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	emailAdapter "clubsite/internal/adapters/email"
	contactDomain "clubsite/internal/domain/contact"
)

// ContactStoreForOrchestrator defines the store interface needed by SubmitContact.
type ContactStoreForOrchestrator interface {
	Save(ctx context.Context, s contactDomain.Submission) error
}

// ContactMetrics counts submissions by outcome. Optional.
type ContactMetrics interface {
	RecordContact(status string)
}

// SubmitContactCommand holds the raw form input.
// PRE: Message is non-blank; Name and ReplyTo may be empty.
type SubmitContactCommand struct {
	ID      string
	Name    string
	ReplyTo string
	Message string
}

// SubmitContactDeps are the external dependencies for this orchestrator.
type SubmitContactDeps struct {
	ContactStore ContactStoreForOrchestrator
	EmailSender  emailAdapter.Sender
	Metrics      ContactMetrics
	Now          func() time.Time
	ClubAddress  string // Where feedback is delivered
	FromAddress  string
}

// ExecuteSubmitContact validates a feedback message, relays it to the club address and records the outcome.
// Transport and storage failures are logged but not returned: the sender is never told whether
// delivery worked, and nothing is retried. Validation and configuration errors are the only
// outcomes that keep the visitor from the thank-you page.
// PRE: deps.ClubAddress is set
// POST: Dispatch attempted once for every valid message; the record is best effort
func ExecuteSubmitContact(ctx context.Context, cmd SubmitContactCommand, deps SubmitContactDeps) (contactDomain.Submission, error) {
	if deps.ClubAddress == "" {
		return contactDomain.Submission{}, errors.New("club email address is not configured")
	}

	sub := contactDomain.Submission{
		ID:          cmd.ID,
		Name:        strings.TrimSpace(cmd.Name),
		ReplyTo:     strings.TrimSpace(cmd.ReplyTo),
		Message:     cmd.Message,
		Status:      contactDomain.StatusReceived,
		SubmittedAt: deps.Now().UTC(),
	}
	if err := sub.Validate(); err != nil {
		return contactDomain.Submission{}, err
	}

	if err := deps.ContactStore.Save(ctx, sub); err != nil {
		slog.Error("contact_record_failed", "error", err.Error(), "submission_id", sub.ID, "status", sub.Status)
	}

	req := emailAdapter.SendRequest{
		To:      []string{deps.ClubAddress},
		From:    deps.FromAddress,
		Subject: contactDomain.Subject,
		Text:    sub.Body(),
	}
	if sub.HasReplyTo() {
		req.ReplyTo = sub.ReplyTo
	}

	result, err := deps.EmailSender.Send(ctx, req)
	if err != nil {
		slog.Error("contact_dispatch_failed", "error", err.Error(), "submission_id", sub.ID)
		sub.MarkFailed()
	} else {
		sub.MarkSent(result.MessageID)
	}

	if err := deps.ContactStore.Save(ctx, sub); err != nil {
		slog.Error("contact_record_failed", "error", err.Error(), "submission_id", sub.ID, "status", sub.Status)
	}
	if deps.Metrics != nil {
		deps.Metrics.RecordContact(sub.Status)
	}

	slog.Info("contact_submitted", "submission_id", sub.ID, "status", sub.Status, "named", sub.Name != "", "has_reply_to", sub.HasReplyTo())
	return sub, nil
}
