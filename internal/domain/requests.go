package domain

import "github.com/vhvplatform/go-permit-notification-service/internal/shared/errors"

// SubmissionRequest represents a request to notify approvers and safety
// officers that a new permit was submitted.
type SubmissionRequest struct {
	RequesterName  string         `json:"requesterName"`
	RequesterEmail string         `json:"requesterEmail"`
	PermitType     PermitType     `json:"permitType"`
	PermitID       string         `json:"permitId"`
	Approvers      []Recipient    `json:"approvers,omitempty"`
	SafetyOfficers []Recipient    `json:"safetyOfficers,omitempty"`
	PermitDetails  map[string]any `json:"permitDetails"`
}

// Validate checks the fields required before a submission notification may be
// dispatched.
func (r *SubmissionRequest) Validate() error {
	if r.RequesterName == "" || r.RequesterEmail == "" || r.PermitID == "" || !r.PermitType.Valid() {
		return errors.NewValidationError("Missing required fields: requesterName, requesterEmail, permitType, permitId", nil)
	}
	return nil
}

// RecipientSources returns the role-tagged recipient lists to merge.
func (r *SubmissionRequest) RecipientSources() [][]Recipient {
	return [][]Recipient{r.Approvers, r.SafetyOfficers}
}

// CommentRequest represents a request to notify permit stakeholders of a new
// comment.
type CommentRequest struct {
	SenderName string      `json:"senderName"`
	SenderRole SenderRole  `json:"senderRole"`
	PermitType PermitType  `json:"permitType"`
	PermitID   string      `json:"permitId"`
	Comment    string      `json:"comment"`
	Recipients []Recipient `json:"recipients,omitempty"`
}

// Validate checks the fields required before a comment notification may be
// dispatched.
func (r *CommentRequest) Validate() error {
	if r.SenderName == "" || r.SenderRole == "" || r.PermitID == "" || r.Comment == "" || !r.PermitType.Valid() {
		return errors.NewValidationError("Missing required fields: senderName, senderRole, permitType, permitId, comment", nil)
	}
	return nil
}

// RecipientSources returns the recipient lists to merge.
func (r *CommentRequest) RecipientSources() [][]Recipient {
	return [][]Recipient{r.Recipients}
}

// ApprovalRequest represents a request to notify permit stakeholders of an
// approval decision.
type ApprovalRequest struct {
	ApproverName string         `json:"approverName"`
	PermitType   PermitType     `json:"permitType"`
	PermitID     string         `json:"permitId"`
	Status       ApprovalStatus `json:"status"`
	Comment      string         `json:"comment,omitempty"`
	Recipients   []Recipient    `json:"recipients,omitempty"`
}

// Validate checks the fields required before an approval notification may be
// dispatched.
func (r *ApprovalRequest) Validate() error {
	if r.ApproverName == "" || r.PermitID == "" || !r.PermitType.Valid() || !r.Status.Valid() {
		return errors.NewValidationError("Missing required fields: approverName, permitType, permitId, status", nil)
	}
	return nil
}

// RecipientSources returns the recipient lists to merge.
func (r *ApprovalRequest) RecipientSources() [][]Recipient {
	return [][]Recipient{r.Recipients}
}
