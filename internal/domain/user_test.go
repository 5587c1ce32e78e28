package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserPredicates(t *testing.T) {
	approved := &User{Role: RoleProvider, VerificationStatus: VerificationApproved}
	pending := &User{Role: RoleProvider, VerificationStatus: VerificationPending}
	admin := &User{Role: RoleAdmin}
	client := &User{Role: RoleClient}

	assert.True(t, approved.IsApprovedProvider())
	assert.False(t, pending.IsApprovedProvider())
	assert.False(t, admin.IsApprovedProvider())

	// An "Approved" status on a non-provider does not make it a provider.
	client.VerificationStatus = VerificationApproved
	assert.False(t, client.IsApprovedProvider())

	assert.True(t, admin.IsAdmin())
	assert.False(t, approved.IsAdmin())

	var nobody *User
	assert.False(t, nobody.IsAdmin())
	assert.False(t, nobody.IsApprovedProvider())
}

func TestUserOffers(t *testing.T) {
	u := &User{ServicesOffered: []string{"Plumbing", "Electrical"}}

	assert.True(t, u.Offers("Plumbing"))
	assert.True(t, u.Offers("plumbing"))
	assert.False(t, u.Offers("Painting"))
}
