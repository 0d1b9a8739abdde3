// Package directory serves the sample permit and user records the filter UI
// browses. Records are seeded in memory; nothing here is persisted.
package directory

import (
	"strings"
	"time"

	"github.com/vhvplatform/go-permit-notification-service/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Store is an immutable, read-only directory of permits and users.
type Store struct {
	permits []domain.Permit
	users   []domain.User
}

// NewStore creates a directory seeded with sample data.
func NewStore() *Store {
	return &Store{
		permits: seedPermits(),
		users:   seedUsers(),
	}
}

// ListPermits applies the filter and returns one page of permits plus the
// total match count. Page defaults to 1 and page size is clamped to
// [1, 100] with a default of 20.
func (s *Store) ListPermits(filter domain.PermitFilter) ([]domain.Permit, int) {
	matched := make([]domain.Permit, 0)
	for _, p := range s.permits {
		if s.matches(p, filter) {
			matched = append(matched, p)
		}
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	total := len(matched)
	offset := (page - 1) * pageSize
	if offset >= total {
		return []domain.Permit{}, total
	}
	end := offset + pageSize
	if end > total {
		end = total
	}
	return matched[offset:end], total
}

// matches applies all filter dimensions; empty dimensions match everything.
func (s *Store) matches(p domain.Permit, filter domain.PermitFilter) bool {
	if search := strings.TrimSpace(filter.Search); search != "" {
		needle := strings.ToLower(search)
		if !strings.Contains(strings.ToLower(p.ID), needle) &&
			!strings.Contains(strings.ToLower(p.Requester), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if filter.Plant != "" && !strings.EqualFold(p.Plant, filter.Plant) {
		return false
	}
	if filter.Department != "" && !strings.EqualFold(p.Department, filter.Department) {
		return false
	}
	if filter.Status != "" && p.Status != filter.Status {
		return false
	}
	if filter.From != "" {
		if from, err := time.Parse("2006-01-02", filter.From); err == nil && p.CreatedAt.Before(from) {
			return false
		}
	}
	if filter.To != "" {
		if to, err := time.Parse("2006-01-02", filter.To); err == nil && p.CreatedAt.After(to.Add(24*time.Hour)) {
			return false
		}
	}
	return true
}

// Users returns directory users, optionally filtered by role.
func (s *Store) Users(role string) []domain.User {
	if role == "" {
		return s.users
	}
	filtered := make([]domain.User, 0)
	for _, u := range s.users {
		if strings.EqualFold(u.Role, role) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

func seedPermits() []domain.Permit {
	day := func(offset int) time.Time {
		return time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
	}
	return []domain.Permit{
		{ID: "PTW-1001", Type: domain.PermitTypeWork, Status: domain.PermitStatusSubmitted, Plant: "Plant A", Department: "Maintenance", Requester: "Ravi Kumar", Description: "Pump seal replacement in unit 3", CreatedAt: day(0)},
		{ID: "PTW-1002", Type: domain.PermitTypeHeight, Status: domain.PermitStatusApproved, Plant: "Plant A", Department: "Civil", Requester: "Meera Nair", Description: "Scaffolding erection on cooling tower", CreatedAt: day(2)},
		{ID: "PTW-1003", Type: domain.PermitTypeGas, Status: domain.PermitStatusSubmitted, Plant: "Plant B", Department: "Operations", Requester: "John Mathew", Description: "Hot tapping on fuel gas line", CreatedAt: day(3)},
		{ID: "PTW-1004", Type: domain.PermitTypeWork, Status: domain.PermitStatusRejected, Plant: "Plant B", Department: "Electrical", Requester: "Anita Desai", Description: "Cable tray installation near MCC room", CreatedAt: day(5)},
		{ID: "PTW-1005", Type: domain.PermitTypeWork, Status: domain.PermitStatusApproved, Plant: "Plant A", Department: "Maintenance", Requester: "Ravi Kumar", Description: "Conveyor belt alignment", CreatedAt: day(7)},
		{ID: "PTW-1006", Type: domain.PermitTypeHeight, Status: domain.PermitStatusClosed, Plant: "Plant C", Department: "Civil", Requester: "Suresh Babu", Description: "Roof sheet replacement, warehouse 2", CreatedAt: day(9)},
		{ID: "PTW-1007", Type: domain.PermitTypeGas, Status: domain.PermitStatusDraft, Plant: "Plant C", Department: "Operations", Requester: "Meera Nair", Description: "Purging of LPG storage sphere", CreatedAt: day(11)},
		{ID: "PTW-1008", Type: domain.PermitTypeWork, Status: domain.PermitStatusSubmitted, Plant: "Plant A", Department: "Electrical", Requester: "John Mathew", Description: "Transformer oil filtration", CreatedAt: day(13)},
	}
}

func seedUsers() []domain.User {
	return []domain.User{
		{ID: "u-01", Name: "Arun Menon", Email: "arun.menon@permit-system.local", Role: "approver", Plant: "Plant A", Department: "Maintenance"},
		{ID: "u-02", Name: "Divya Pillai", Email: "divya.pillai@permit-system.local", Role: "approver", Plant: "Plant B", Department: "Operations"},
		{ID: "u-03", Name: "Karthik Iyer", Email: "karthik.iyer@permit-system.local", Role: "safety", Plant: "Plant A", Department: "HSE"},
		{ID: "u-04", Name: "Sneha Raj", Email: "sneha.raj@permit-system.local", Role: "safety", Plant: "Plant C", Department: "HSE"},
		{ID: "u-05", Name: "Ravi Kumar", Email: "ravi.kumar@permit-system.local", Role: "requester", Plant: "Plant A", Department: "Maintenance"},
		{ID: "u-06", Name: "Meera Nair", Email: "meera.nair@permit-system.local", Role: "requester", Plant: "Plant C", Department: "Operations"},
	}
}
