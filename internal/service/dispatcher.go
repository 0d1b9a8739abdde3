package service

import (
	"context"
	"sync"
	"time"

	"github.com/vhvplatform/go-permit-notification-service/internal/domain"
	"github.com/vhvplatform/go-permit-notification-service/internal/metrics"
	"github.com/vhvplatform/go-permit-notification-service/internal/shared/errors"
	"github.com/vhvplatform/go-permit-notification-service/internal/shared/logger"
)

// Notification is implemented by the per-kind request types. It carries the
// validation and recipient-source halves of a dispatch; rendering stays with
// the per-kind entry points below.
type Notification interface {
	Validate() error
	RecipientSources() [][]domain.Recipient
}

// renderFunc renders the single (subject, html) pair sent to every recipient.
type renderFunc func(recipients []string) (subject, html string, err error)

// Dispatcher validates a notification request, resolves its recipients,
// renders the message once and fans out one independent send per recipient.
type Dispatcher struct {
	sender Sender
	log    *logger.Logger
}

// NewDispatcher creates a dispatcher on top of a Sender.
func NewDispatcher(sender Sender, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		log:    log,
	}
}

// DispatchSubmission sends a permit-submission notification.
func (d *Dispatcher) DispatchSubmission(ctx context.Context, req *domain.SubmissionRequest) (domain.DispatchOutcome, error) {
	return d.dispatch(ctx, "submission", req, func(recipients []string) (string, string, error) {
		return RenderSubmission(req, recipients)
	})
}

// DispatchComment sends a permit-comment notification.
func (d *Dispatcher) DispatchComment(ctx context.Context, req *domain.CommentRequest) (domain.DispatchOutcome, error) {
	return d.dispatch(ctx, "comment", req, func(recipients []string) (string, string, error) {
		return RenderComment(req, recipients)
	})
}

// DispatchApproval sends an approval-decision notification.
func (d *Dispatcher) DispatchApproval(ctx context.Context, req *domain.ApprovalRequest) (domain.DispatchOutcome, error) {
	return d.dispatch(ctx, "approval", req, func(recipients []string) (string, string, error) {
		return RenderApproval(req)
	})
}

// dispatch is the shared per-kind control flow. Validation failures abort
// before any send; per-recipient transport failures are absorbed into the
// outcome and never abort sibling sends.
func (d *Dispatcher) dispatch(ctx context.Context, kind string, n Notification, render renderFunc) (domain.DispatchOutcome, error) {
	if err := n.Validate(); err != nil {
		metrics.ValidationFailures.WithLabelValues(kind).Inc()
		return domain.DispatchOutcome{}, err
	}

	recipients := ResolveRecipients(n.RecipientSources()...)
	if len(recipients) == 0 {
		metrics.ValidationFailures.WithLabelValues(kind).Inc()
		return domain.DispatchOutcome{}, errors.NewValidationError("No valid recipients resolved for notification", nil)
	}

	subject, html, err := render(recipients)
	if err != nil {
		return domain.DispatchOutcome{}, errors.NewInternalError("Failed to render notification", err)
	}

	start := time.Now()
	outcome := d.fanOut(ctx, kind, recipients, subject, html)
	metrics.DispatchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if outcome.Failed > 0 {
		d.log.Warn("Some notification sends failed",
			"kind", kind, "failed", outcome.Failed, "total", outcome.Total)
	}
	return outcome, nil
}

// fanOut issues one independent send per recipient and waits for all of them
// to settle. Counts are order-independent; no send is retried.
func (d *Dispatcher) fanOut(ctx context.Context, kind string, recipients []string, subject, html string) domain.DispatchOutcome {
	results := make(chan error, len(recipients))
	var wg sync.WaitGroup

	for _, to := range recipients {
		wg.Add(1)
		go func(to string) {
			defer wg.Done()
			messageID, err := d.sender.Send(ctx, to, subject, html)
			if err != nil {
				d.log.Error("Failed to send notification email",
					"kind", kind, "recipient", to, "error", err)
				metrics.NotificationsSent.WithLabelValues(kind, "failure").Inc()
			} else {
				d.log.Debug("Notification email sent",
					"kind", kind, "recipient", to, "message_id", messageID)
				metrics.NotificationsSent.WithLabelValues(kind, "success").Inc()
			}
			results <- err
		}(to)
	}

	wg.Wait()
	close(results)

	outcome := domain.DispatchOutcome{Total: len(recipients)}
	for err := range results {
		if err != nil {
			outcome.Failed++
		} else {
			outcome.Sent++
		}
	}
	return outcome
}
