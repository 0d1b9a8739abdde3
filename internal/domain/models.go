package domain

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"
)

// PermitType classifies the kind of work-safety permit a notification concerns.
type PermitType string

const (
	PermitTypeWork   PermitType = "work"
	PermitTypeHeight PermitType = "ht"
	PermitTypeGas    PermitType = "gas"
)

// Valid reports whether the permit type is one of the known values.
func (t PermitType) Valid() bool {
	switch t {
	case PermitTypeWork, PermitTypeHeight, PermitTypeGas:
		return true
	}
	return false
}

// Label returns the permit type with its first letter capitalized, e.g.
// "work" -> "Work".
func (t PermitType) Label() string {
	return capitalize(string(t))
}

// ApprovalStatus represents the outcome of an approval decision.
type ApprovalStatus string

const (
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
	StatusPending  ApprovalStatus = "pending"
)

// Valid reports whether the status is one of the known values.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusPending:
		return true
	}
	return false
}

// Label returns the human-readable status label.
func (s ApprovalStatus) Label() string {
	switch s {
	case StatusApproved:
		return "Approved"
	case StatusRejected:
		return "Rejected"
	default:
		return "Pending Review"
	}
}

// Color returns the banner color for the status: green for approved, red for
// rejected, amber for pending.
func (s ApprovalStatus) Color() string {
	switch s {
	case StatusApproved:
		return "#16a34a"
	case StatusRejected:
		return "#dc2626"
	default:
		return "#d97706"
	}
}

// SenderRole identifies who authored a permit comment.
type SenderRole string

const (
	RoleRequester SenderRole = "requester"
	RoleApprover  SenderRole = "approver"
	RoleSafety    SenderRole = "safety"
)

// Recipient is a JSON-flexible recipient entry. Callers may supply either a
// bare email-address string or a user record carrying the address under one
// of several field names. Entries that carry no usable address unmarshal to
// an empty value and are discarded during recipient resolution.
type Recipient struct {
	addr string
}

// NewRecipient builds a recipient from a plain address string.
func NewRecipient(addr string) Recipient {
	return Recipient{addr: addr}
}

// addressFields lists the user-record field names that may carry an email
// address, in lookup order.
var addressFields = []string{"email", "emailAddress", "mail", "contactEmail"}

// UnmarshalJSON accepts a string or an object with an email-bearing field.
// Unusable entries (numbers, null, objects without an address) decode to an
// empty recipient rather than failing the whole request.
func (r *Recipient) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.addr = s
		return nil
	}

	var record map[string]any
	if err := json.Unmarshal(data, &record); err != nil {
		r.addr = ""
		return nil
	}
	for _, field := range addressFields {
		if v, ok := record[field].(string); ok && v != "" {
			r.addr = v
			return nil
		}
	}
	r.addr = ""
	return nil
}

// MarshalJSON renders the recipient back as a plain address string.
func (r Recipient) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.addr)
}

// Address returns the trimmed email address, or ok=false when the entry
// carried no usable address.
func (r Recipient) Address() (string, bool) {
	addr := strings.TrimSpace(r.addr)
	if addr == "" {
		return "", false
	}
	return addr, true
}

// DispatchOutcome aggregates per-recipient send results for one notification.
type DispatchOutcome struct {
	Sent   int
	Failed int
	Total  int
}

// capitalize uppercases the first letter of s and leaves the rest unchanged.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
