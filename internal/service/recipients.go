package service

import (
	"strings"

	"github.com/vhvplatform/go-permit-notification-service/internal/domain"
)

// ResolveRecipients merges zero or more role-tagged recipient lists into one
// deduplicated address list. Entries that carry no usable address are
// discarded; duplicates are matched case-insensitively and the first-seen
// form is kept. An empty result means the notification has nobody to go to
// and must be rejected by the caller.
func ResolveRecipients(sources ...[]domain.Recipient) []string {
	seen := make(map[string]struct{})
	resolved := make([]string, 0)

	for _, source := range sources {
		for _, entry := range source {
			addr, ok := entry.Address()
			if !ok {
				continue
			}
			key := strings.ToLower(addr)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			resolved = append(resolved, addr)
		}
	}

	return resolved
}
