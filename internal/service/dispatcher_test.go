package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhvplatform/go-permit-notification-service/internal/domain"
	"github.com/vhvplatform/go-permit-notification-service/internal/shared/errors"
	"github.com/vhvplatform/go-permit-notification-service/internal/shared/logger"
)

// fakeSender records sends and fails the recipients listed in failFor.
type fakeSender struct {
	mu       sync.Mutex
	sent     []string
	subjects []string
	failFor  map[string]error
}

func newFakeSender() *fakeSender {
	return &fakeSender{failFor: make(map[string]error)}
}

func (f *fakeSender) Send(ctx context.Context, to, subject, html string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	f.subjects = append(f.subjects, subject)
	if err, ok := f.failFor[to]; ok {
		return "", err
	}
	return "msg-" + to, nil
}

func (f *fakeSender) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func recipientsFromJSON(t *testing.T, raw string) []domain.Recipient {
	t.Helper()
	var recipients []domain.Recipient
	require.NoError(t, json.Unmarshal([]byte(raw), &recipients))
	return recipients
}

func validSubmission(t *testing.T) *domain.SubmissionRequest {
	return &domain.SubmissionRequest{
		RequesterName:  "Ravi Kumar",
		RequesterEmail: "ravi@plant.com",
		PermitType:     domain.PermitTypeWork,
		PermitID:       "PTW-1001",
		Approvers:      recipientsFromJSON(t, `["a@x.com"]`),
		SafetyOfficers: recipientsFromJSON(t, `["a@x.com", "b@x.com"]`),
		PermitDetails:  map[string]any{"location": "Unit 3"},
	}
}

func TestDispatchSubmissionFansOutOncePerUniqueRecipient(t *testing.T) {
	sender := newFakeSender()
	d := NewDispatcher(sender, logger.NewNop())

	outcome, err := d.DispatchSubmission(context.Background(), validSubmission(t))
	require.NoError(t, err)

	assert.Equal(t, domain.DispatchOutcome{Sent: 2, Failed: 0, Total: 2}, outcome)
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, sender.recipients())
}

func TestDispatchValidationFailureMakesNoSends(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.SubmissionRequest)
	}{
		{"missing requester name", func(r *domain.SubmissionRequest) { r.RequesterName = "" }},
		{"missing requester email", func(r *domain.SubmissionRequest) { r.RequesterEmail = "" }},
		{"missing permit id", func(r *domain.SubmissionRequest) { r.PermitID = "" }},
		{"invalid permit type", func(r *domain.SubmissionRequest) { r.PermitType = "digging" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := newFakeSender()
			d := NewDispatcher(sender, logger.NewNop())

			req := validSubmission(t)
			tt.mutate(req)

			_, err := d.DispatchSubmission(context.Background(), req)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			assert.Empty(t, sender.recipients(), "validation failure must not reach the transport")
		})
	}
}

func TestDispatchEmptyRecipientSetMakesNoSends(t *testing.T) {
	sender := newFakeSender()
	d := NewDispatcher(sender, logger.NewNop())

	req := validSubmission(t)
	req.Approvers = nil
	// Present but unusable entries must still resolve to an empty set.
	req.SafetyOfficers = recipientsFromJSON(t, `["", null, {"name":"nobody"}]`)

	_, err := d.DispatchSubmission(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Empty(t, sender.recipients())
}

func TestDispatchPartialFailureIsNotARequestError(t *testing.T) {
	sender := newFakeSender()
	sender.failFor["b@x.com"] = errors.NewTransportError("connection refused", nil)
	sender.failFor["c@x.com"] = errors.NewTransportError("mailbox full", nil)
	d := NewDispatcher(sender, logger.NewNop())

	req := validSubmission(t)
	req.Approvers = recipientsFromJSON(t, `["a@x.com", "b@x.com", "c@x.com", "d@x.com"]`)
	req.SafetyOfficers = nil

	outcome, err := d.DispatchSubmission(context.Background(), req)
	require.NoError(t, err, "per-recipient transport failures are absorbed, not surfaced")

	assert.Equal(t, domain.DispatchOutcome{Sent: 2, Failed: 2, Total: 4}, outcome)
	assert.Len(t, sender.recipients(), 4, "one failure must not abort sibling sends")
}

func TestDispatchAllFailuresStillSettles(t *testing.T) {
	sender := newFakeSender()
	sender.failFor["a@x.com"] = errors.NewTransportError("down", nil)
	sender.failFor["b@x.com"] = errors.NewTransportError("down", nil)
	d := NewDispatcher(sender, logger.NewNop())

	outcome, err := d.DispatchSubmission(context.Background(), validSubmission(t))
	require.NoError(t, err)
	assert.Equal(t, domain.DispatchOutcome{Sent: 0, Failed: 2, Total: 2}, outcome)
}

func TestDispatchComment(t *testing.T) {
	sender := newFakeSender()
	d := NewDispatcher(sender, logger.NewNop())

	req := &domain.CommentRequest{
		SenderName: "Karthik Iyer",
		SenderRole: domain.RoleSafety,
		PermitType: domain.PermitTypeHeight,
		PermitID:   "PTW-1002",
		Comment:    "Anchor points not certified.",
		Recipients: recipientsFromJSON(t, `["a@x.com", {"email":"b@x.com"}]`),
	}

	outcome, err := d.DispatchComment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.Sent)

	// Missing comment text is a validation failure.
	req.Comment = ""
	_, err = d.DispatchComment(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestDispatchApproval(t *testing.T) {
	sender := newFakeSender()
	d := NewDispatcher(sender, logger.NewNop())

	req := &domain.ApprovalRequest{
		ApproverName: "Arun Menon",
		PermitType:   domain.PermitTypeGas,
		PermitID:     "PTW-1003",
		Status:       domain.StatusApproved,
		Recipients:   recipientsFromJSON(t, `["requester@plant.com"]`),
	}

	outcome, err := d.DispatchApproval(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.DispatchOutcome{Sent: 1, Failed: 0, Total: 1}, outcome)

	req.Status = "maybe"
	_, err = d.DispatchApproval(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Len(t, sender.recipients(), 1)
}

func TestDispatchSameBodyToEveryRecipient(t *testing.T) {
	sender := newFakeSender()
	d := NewDispatcher(sender, logger.NewNop())

	_, err := d.DispatchSubmission(context.Background(), validSubmission(t))
	require.NoError(t, err)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.subjects, 2)
	assert.Equal(t, sender.subjects[0], sender.subjects[1], "the message is rendered once, not per recipient")
}
