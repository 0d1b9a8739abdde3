package domain

import "time"

// PermitStatus represents the lifecycle state of a permit in the directory.
type PermitStatus string

const (
	PermitStatusDraft     PermitStatus = "draft"
	PermitStatusSubmitted PermitStatus = "submitted"
	PermitStatusApproved  PermitStatus = "approved"
	PermitStatusRejected  PermitStatus = "rejected"
	PermitStatusClosed    PermitStatus = "closed"
)

// Permit is a directory record the filter UI browses.
type Permit struct {
	ID          string       `json:"id"`
	Type        PermitType   `json:"type"`
	Status      PermitStatus `json:"status"`
	Plant       string       `json:"plant"`
	Department  string       `json:"department"`
	Requester   string       `json:"requester"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// PermitFilter carries the query parameters of a permit-list request.
type PermitFilter struct {
	Search     string       `form:"search"`
	Plant      string       `form:"plant"`
	Department string       `form:"department"`
	Status     PermitStatus `form:"status"`
	From       string       `form:"from"`
	To         string       `form:"to"`
	Page       int          `form:"page"`
	PageSize   int          `form:"pageSize"`
}

// User is a directory record for approvers and safety officers.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Plant      string `json:"plant"`
	Department string `json:"department"`
}
