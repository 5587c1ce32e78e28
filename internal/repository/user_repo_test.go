package repository_test

import (
	"context"
	"errors"
	"testing"

	"fixify/internal/domain"
	"fixify/internal/repository"
	"fixify/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_EmailUniqueAndNormalized(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)

	u := seedUser(t, users, "  Ann@Example.com ", domain.RoleClient)
	assert.Equal(t, "ann@example.com", u.Email)

	got, err := users.GetByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	dup := &domain.User{Name: "B", Email: "ann@example.com", PasswordHash: "x", Role: domain.RoleClient}
	err = users.Create(ctx, dup)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = users.GetByID(ctx, 9999)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUserRepository_ProvidersAndVerification(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)

	client := seedUser(t, users, "c@x.io", domain.RoleClient)
	p := &domain.User{
		Name: "P", Email: "p@x.io", PasswordHash: "x", Phone: "1", Address: "A",
		Role: domain.RoleProvider, VerificationStatus: domain.VerificationPending,
		ServicesOffered: []string{"Plumbing", "Electrical"}, Availability: true,
	}
	require.NoError(t, users.Create(ctx, p))

	pending, err := users.ListProviders(ctx, domain.VerificationPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, []string{"Plumbing", "Electrical"}, pending[0].ServicesOffered)

	updated, err := users.SetVerificationStatus(ctx, p.ID, domain.VerificationApproved)
	require.NoError(t, err)
	assert.True(t, updated.IsApprovedProvider())

	_, err = users.SetVerificationStatus(ctx, client.ID, domain.VerificationApproved)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "clients cannot be verified")

	counts, err := users.CountByRole(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[domain.RoleClient])
	assert.Equal(t, int64(1), counts[domain.RoleProvider])
}
