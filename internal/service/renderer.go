package service

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strings"

	"github.com/vhvplatform/go-permit-notification-service/internal/domain"
)

// All user-supplied fields (names, comments, permit details) pass through
// html/template so they are escaped on interpolation.

var submissionTemplate = template.Must(template.New("submission").Parse(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#1d4ed8">New {{.TypeLabel}} Permit Request</h2>
  <p>A new {{.TypeLabel}} permit has been submitted and requires your review.</p>
  <table style="border-collapse:collapse;width:100%">
    <tr><td style="padding:6px 12px;font-weight:bold">Permit ID</td><td style="padding:6px 12px">{{.PermitID}}</td></tr>
    <tr><td style="padding:6px 12px;font-weight:bold">Permit Type</td><td style="padding:6px 12px">{{.TypeLabel}}</td></tr>
    <tr><td style="padding:6px 12px;font-weight:bold">Requester</td><td style="padding:6px 12px">{{.RequesterName}} ({{.RequesterEmail}})</td></tr>
    <tr><td style="padding:6px 12px;font-weight:bold">Notified</td><td style="padding:6px 12px">{{.RecipientList}}</td></tr>
  </table>
  <h3>Permit Details</h3>
  <pre style="background:#f3f4f6;padding:12px;border-radius:4px;overflow:auto">{{.Details}}</pre>
</div>`))

var commentTemplate = template.Must(template.New("comment").Parse(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#1d4ed8">New Comment on {{.TypeLabel}} Permit {{.PermitID}}</h2>
  <p><strong>{{.SenderName}}</strong> ({{.SenderRole}}) commented:</p>
  <blockquote style="background:#f3f4f6;padding:12px;border-left:4px solid #1d4ed8;margin:0">{{range $i, $line := .CommentLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</blockquote>
  <p style="color:#6b7280;font-size:12px">Sent to: {{.RecipientList}}</p>
</div>`))

var approvalTemplate = template.Must(template.New("approval").Parse(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <div style="background:{{.StatusColor}};color:#ffffff;padding:16px;border-radius:4px;text-align:center">
    <h2 style="margin:0">{{.StatusLabel}}</h2>
  </div>
  <p><strong>{{.ApproverName}}</strong> reviewed the {{.TypeLabel}} permit <strong>{{.PermitID}}</strong>.</p>
  <p>Decision: <strong>{{.StatusLabel}}</strong></p>
  {{if .CommentLines}}<h3>Comment</h3>
  <blockquote style="background:#f3f4f6;padding:12px;border-left:4px solid {{.StatusColor}};margin:0">{{range $i, $line := .CommentLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</blockquote>
  {{end}}
</div>`))

// RenderSubmission renders the subject and HTML body for a submission
// notification. The same body goes to every recipient.
func RenderSubmission(req *domain.SubmissionRequest, recipients []string) (string, string, error) {
	subject := fmt.Sprintf("New %s Permit Request - %s", req.PermitType.Label(), req.PermitID)

	details, err := json.MarshalIndent(req.PermitDetails, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("failed to encode permit details: %w", err)
	}

	data := struct {
		TypeLabel      string
		PermitID       string
		RequesterName  string
		RequesterEmail string
		RecipientList  string
		Details        string
	}{
		TypeLabel:      req.PermitType.Label(),
		PermitID:       req.PermitID,
		RequesterName:  req.RequesterName,
		RequesterEmail: req.RequesterEmail,
		RecipientList:  strings.Join(recipients, ", "),
		Details:        string(details),
	}

	var body strings.Builder
	if err := submissionTemplate.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("failed to render submission template: %w", err)
	}
	return subject, body.String(), nil
}

// RenderComment renders the subject and HTML body for a comment notification.
func RenderComment(req *domain.CommentRequest, recipients []string) (string, string, error) {
	subject := fmt.Sprintf("New Comment on %s Permit %s", req.PermitType.Label(), req.PermitID)

	data := struct {
		TypeLabel     string
		PermitID      string
		SenderName    string
		SenderRole    string
		CommentLines  []string
		RecipientList string
	}{
		TypeLabel:     req.PermitType.Label(),
		PermitID:      req.PermitID,
		SenderName:    req.SenderName,
		SenderRole:    string(req.SenderRole),
		CommentLines:  splitLines(req.Comment),
		RecipientList: strings.Join(recipients, ", "),
	}

	var body strings.Builder
	if err := commentTemplate.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("failed to render comment template: %w", err)
	}
	return subject, body.String(), nil
}

// RenderApproval renders the subject and HTML body for an approval decision
// notification. The comment block is omitted when no comment was supplied.
func RenderApproval(req *domain.ApprovalRequest) (string, string, error) {
	subject := fmt.Sprintf("%s Permit %s %s", req.PermitType.Label(), req.PermitID, req.Status.Label())

	data := struct {
		TypeLabel    string
		PermitID     string
		ApproverName string
		StatusLabel  string
		StatusColor  string
		CommentLines []string
	}{
		TypeLabel:    req.PermitType.Label(),
		PermitID:     req.PermitID,
		ApproverName: req.ApproverName,
		StatusLabel:  req.Status.Label(),
		StatusColor:  req.Status.Color(),
		CommentLines: splitLines(req.Comment),
	}

	var body strings.Builder
	if err := approvalTemplate.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("failed to render approval template: %w", err)
	}
	return subject, body.String(), nil
}

// splitLines breaks free text on newlines so templates can join the escaped
// lines with <br>. Empty input yields nil so optional blocks can test it.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
