package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vhvplatform/go-permit-notification-service/internal/domain"
)

func decodeRecipients(t *testing.T, raw string) []domain.Recipient {
	t.Helper()
	var recipients []domain.Recipient
	require.NoError(t, json.Unmarshal([]byte(raw), &recipients))
	return recipients
}

func TestResolveRecipientsDeduplicates(t *testing.T) {
	approvers := decodeRecipients(t, `["a@x.com"]`)
	safetyOfficers := decodeRecipients(t, `["a@x.com", "b@x.com"]`)

	resolved := ResolveRecipients(approvers, safetyOfficers)

	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, resolved)
	assert.Len(t, resolved, 2)
}

func TestResolveRecipientsAcrossRecordShapes(t *testing.T) {
	// The same address supplied as a plain string and under different
	// user-record fields must still count once.
	sources := [][]domain.Recipient{
		decodeRecipients(t, `["a@x.com"]`),
		decodeRecipients(t, `[{"email":"a@x.com"}]`),
		decodeRecipients(t, `[{"emailAddress":"a@x.com"}, {"contactEmail":"b@x.com"}]`),
	}

	resolved := ResolveRecipients(sources...)
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, resolved)
}

func TestResolveRecipientsCaseInsensitive(t *testing.T) {
	resolved := ResolveRecipients(decodeRecipients(t, `["A@X.com", "a@x.com"]`))
	assert.Len(t, resolved, 1)
}

func TestResolveRecipientsDiscardsUnusableEntries(t *testing.T) {
	resolved := ResolveRecipients(decodeRecipients(t, `["", null, 0, {"name":"nobody"}, "  "]`))
	assert.Empty(t, resolved)
}

func TestResolveRecipientsDirectConstruction(t *testing.T) {
	resolved := ResolveRecipients([]domain.Recipient{
		domain.NewRecipient("ops@plant.com"),
		domain.NewRecipient(""),
		domain.NewRecipient("ops@plant.com"),
	})
	assert.Equal(t, []string{"ops@plant.com"}, resolved)
}

func TestResolveRecipientsNilAndEmptySources(t *testing.T) {
	assert.Empty(t, ResolveRecipients())
	assert.Empty(t, ResolveRecipients(nil, nil))
	assert.Empty(t, ResolveRecipients([]domain.Recipient{}))
}

func TestResolveRecipientsKeepsFirstSeenForm(t *testing.T) {
	resolved := ResolveRecipients(decodeRecipients(t, `["Ops@Plant.com", "ops@plant.com"]`))
	require.Len(t, resolved, 1)
	assert.Equal(t, "Ops@Plant.com", resolved[0])
}
