package admin

import (
	"context"
	"testing"

	"fixify/internal/domain"
	"fixify/internal/modules/earnings"
	"fixify/internal/repository"
	"fixify/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ProviderVerified(ctx context.Context, provider *domain.User) error {
	args := m.Called(ctx, provider)
	return args.Error(0)
}

type env struct {
	svc      *Service
	users    *repository.UserRepository
	requests *repository.ServiceRequestRepository
	notifs   *MockNotifier
}

func setup(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	requests := repository.NewServiceRequestRepository(db)
	reports := earnings.NewService(repository.NewEarningsRepository(db))
	notifs := new(MockNotifier)

	return &env{
		svc:      NewService(users, requests, reports, notifs),
		users:    users,
		requests: requests,
		notifs:   notifs,
	}
}

func (e *env) user(t *testing.T, email string, role domain.UserRole) *domain.User {
	t.Helper()
	u := &domain.User{Name: email, Email: email, PasswordHash: "x", Phone: "1", Address: "a", Role: role}
	if role == domain.RoleProvider {
		u.VerificationStatus = domain.VerificationPending
		u.ServicesOffered = []string{"Plumbing"}
		u.Availability = true
	}
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

func TestVerifyProvider(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	p := e.user(t, "p@x.io", domain.RoleProvider)

	e.notifs.On("ProviderVerified", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == p.ID && u.VerificationStatus == domain.VerificationApproved
	})).Return(nil).Once()

	got, err := e.svc.VerifyProvider(ctx, 1, VerifyProviderRequest{ProviderID: p.ID, Status: "Approved"})
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationApproved, got.VerificationStatus)
	e.notifs.AssertExpectations(t)

	approved, err := e.svc.Providers(ctx, "Approved")
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, p.ID, approved[0].ID)
}

func TestVerifyProvider_Errors(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	client := e.user(t, "c@x.io", domain.RoleClient)
	p := e.user(t, "p@x.io", domain.RoleProvider)

	_, err := e.svc.VerifyProvider(ctx, 1, VerifyProviderRequest{ProviderID: p.ID, Status: "Pending"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = e.svc.VerifyProvider(ctx, 1, VerifyProviderRequest{ProviderID: 9999, Status: "Approved"})
	assert.ErrorIs(t, err, ErrProviderNotFound)

	_, err = e.svc.VerifyProvider(ctx, 1, VerifyProviderRequest{ProviderID: client.ID, Status: "Approved"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.svc.Providers(ctx, "Maybe")
	assert.ErrorIs(t, err, domain.ErrValidation)

	e.notifs.AssertNotCalled(t, "ProviderVerified", mock.Anything, mock.Anything)
}

func TestBookingsAndStats(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	client := e.user(t, "c@x.io", domain.RoleClient)
	e.user(t, "p@x.io", domain.RoleProvider)
	e.user(t, "a@x.io", domain.RoleAdmin)

	for i := 0; i < 2; i++ {
		require.NoError(t, e.requests.Create(ctx, &domain.ServiceRequest{
			ClientID: client.ID, ServiceName: "Plumbing", Location: "x", Phone: "1",
		}))
	}

	all, err := e.svc.Bookings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.NotNil(t, all[0].Client)
	assert.Equal(t, client.Name, all[0].Client.Name)

	pending, err := e.svc.PendingBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	stats, err := e.svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Users[domain.RoleClient])
	assert.Equal(t, int64(1), stats.Users[domain.RoleAdmin])
	assert.Equal(t, int64(2), stats.Requests[domain.RequestPending])
	assert.Equal(t, int64(1), stats.PendingProviders)
	assert.Zero(t, stats.TotalRevenue)
}
