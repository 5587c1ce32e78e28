package servicerequest

import (
	"context"
	"encoding/json"
	"math"
	"sync"
	"testing"

	"fixify/internal/domain"
	"fixify/internal/repository"
	"fixify/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
	fanout []int64
}

func (n *recordingNotifier) add(ev string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return nil
}

func (n *recordingNotifier) RequestCreated(_ context.Context, _ *domain.ServiceRequest, ids []int64) error {
	n.mu.Lock()
	n.fanout = append(n.fanout, ids...)
	n.mu.Unlock()
	return n.add("created")
}
func (n *recordingNotifier) RequestAccepted(context.Context, *domain.ServiceRequest) error {
	return n.add("accepted")
}
func (n *recordingNotifier) RequestCompleted(context.Context, *domain.ServiceRequest) error {
	return n.add("completed")
}
func (n *recordingNotifier) RequestPaid(context.Context, *domain.ServiceRequest) error {
	return n.add("paid")
}
func (n *recordingNotifier) RequestRated(context.Context, *domain.ServiceRequest) error {
	return n.add("rated")
}

type fixture struct {
	svc      *Service
	users    *repository.UserRepository
	earnings *repository.EarningsRepository
	notifs   *recordingNotifier
	client   *domain.User
	provider *domain.User
}

func newUser(t *testing.T, users *repository.UserRepository, email string, role domain.UserRole, services ...string) *domain.User {
	t.Helper()
	u := &domain.User{
		Name:         email,
		Email:        email,
		PasswordHash: "x",
		Phone:        "555-0100",
		Address:      "1 Main st",
		Role:         role,
		Availability: true,
	}
	if role == domain.RoleProvider {
		u.VerificationStatus = domain.VerificationApproved
		u.ServicesOffered = services
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	catalog := repository.NewServiceRepository(db)
	require.NoError(t, catalog.Create(context.Background(), &domain.Service{Name: "Plumbing"}))

	notifs := &recordingNotifier{}
	return &fixture{
		svc:      NewService(repository.NewServiceRequestRepository(db), users, catalog, notifs),
		users:    users,
		earnings: repository.NewEarningsRepository(db),
		notifs:   notifs,
		client:   newUser(t, users, "client@x.io", domain.RoleClient),
		provider: newUser(t, users, "provider@x.io", domain.RoleProvider, "Plumbing"),
	}
}

func (f *fixture) create(t *testing.T) *domain.ServiceRequest {
	t.Helper()
	r, err := f.svc.Create(context.Background(), f.client, CreateRequest{
		ServiceName: "plumbing",
		Location:    "12 Oak Ave",
		Phone:       "555-0199",
	})
	require.NoError(t, err)
	return r
}

func (f *fixture) completed(t *testing.T, labour, parts Charge) *domain.ServiceRequest {
	t.Helper()
	ctx := context.Background()
	r := f.create(t)
	_, err := f.svc.Accept(ctx, f.provider, r.ID)
	require.NoError(t, err)
	r, err = f.svc.Complete(ctx, f.provider, r.ID, CompleteRequest{LabourCharge: labour, PartsCharge: parts})
	require.NoError(t, err)
	return r
}

func TestLifecycle_FullFlow(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	r := f.create(t)
	assert.Equal(t, "Plumbing", r.ServiceName)
	assert.Equal(t, domain.RequestPending, r.Status)
	assert.Equal(t, domain.PaymentPending, r.PaymentStatus)
	assert.Nil(t, r.ProviderID)
	assert.Equal(t, []int64{f.provider.ID}, f.notifs.fanout)

	pending, err := f.svc.Pending(ctx, f.provider)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	r, err = f.svc.Accept(ctx, f.provider, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestAccepted, r.Status)
	require.NotNil(t, r.ProviderID)
	assert.Equal(t, f.provider.ID, *r.ProviderID)

	accepted, err := f.svc.Accepted(ctx, f.provider)
	require.NoError(t, err)
	assert.Len(t, accepted, 1)

	r, err = f.svc.Complete(ctx, f.provider, r.ID, CompleteRequest{LabourCharge: 100, PartsCharge: 50})
	require.NoError(t, err)
	assert.Equal(t, domain.RequestCompleted, r.Status)
	assert.Equal(t, 150.0, r.TotalAmount)

	bill, err := f.svc.Bill(ctx, f.client, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 150.0, bill.TotalAmount)
	assert.Equal(t, f.provider.Name, bill.ProviderName)
	assert.Equal(t, domain.PaymentPending, bill.PaymentStatus)

	paid, err := f.svc.Pay(ctx, f.client, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPaid, paid.Request.Status)
	assert.Equal(t, domain.PaymentPaid, paid.Request.PaymentStatus)
	assert.Equal(t, 15.0, paid.Earning.Commission)
	assert.Equal(t, 135.0, paid.Earning.ProviderEarnings)
	assert.Equal(t, 15.0, paid.Request.Commission)
	assert.Equal(t, 135.0, paid.Request.ProviderEarnings)

	entries, err := f.earnings.ListByProvider(ctx, f.provider.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 135.0, entries[0].Balance)

	r, err = f.svc.Rate(ctx, f.client, r.ID, 4)
	require.NoError(t, err)
	require.NotNil(t, r.Rating)
	assert.Equal(t, 4, *r.Rating)
	assert.Equal(t, 150.0, r.TotalAmount)

	assert.Equal(t, []string{"created", "accepted", "completed", "paid", "rated"}, f.notifs.events)
}

func TestCreate_Validation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.client, CreateRequest{ServiceName: "Plumbing", Location: "  "})
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Create(ctx, f.provider, CreateRequest{ServiceName: "Plumbing", Location: "x", Phone: "1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Names outside the catalog are stored as typed.
	r, err := f.svc.Create(ctx, f.client, CreateRequest{ServiceName: "Roofing", Location: "x", Phone: "1"})
	require.NoError(t, err)
	assert.Equal(t, "Roofing", r.ServiceName)
}

func TestAccept_SecondProviderConflicts(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	other := newUser(t, f.users, "p2@x.io", domain.RoleProvider, "Plumbing")

	r := f.create(t)
	_, err := f.svc.Accept(ctx, f.provider, r.ID)
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, other, r.ID)
	assert.ErrorIs(t, err, ErrAlreadyAccepted)
	assert.ErrorIs(t, err, domain.ErrConflict)

	got, err := f.svc.Get(ctx, f.client, r.ID)
	require.NoError(t, err)
	assert.Equal(t, f.provider.ID, *got.ProviderID)
}

func TestAccept_ConcurrentOnlyOneWins(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	other := newUser(t, f.users, "p2@x.io", domain.RoleProvider, "Plumbing")
	r := f.create(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, p := range []*domain.User{f.provider, other} {
		wg.Add(1)
		go func(i int, p *domain.User) {
			defer wg.Done()
			_, errs[i] = f.svc.Accept(ctx, p, r.ID)
		}(i, p)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyAccepted)
		}
	}
	assert.Equal(t, 1, wins)
}

func TestAccept_Guards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	painter := newUser(t, f.users, "painter@x.io", domain.RoleProvider, "Painting")
	r := f.create(t)

	_, err := f.svc.Accept(ctx, painter, r.ID)
	assert.ErrorIs(t, err, ErrServiceNotOffered)

	unverified := newUser(t, f.users, "new@x.io", domain.RoleProvider, "Plumbing")
	unverified.VerificationStatus = domain.VerificationPending
	_, err = f.svc.Accept(ctx, unverified, r.ID)
	assert.ErrorIs(t, err, ErrNotProvider)

	_, err = f.svc.Accept(ctx, f.provider, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComplete_Guards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	other := newUser(t, f.users, "p2@x.io", domain.RoleProvider, "Plumbing")

	r := f.create(t)
	_, err := f.svc.Complete(ctx, f.provider, r.ID, CompleteRequest{})
	assert.ErrorIs(t, err, ErrNotAssigned)

	_, err = f.svc.Accept(ctx, f.provider, r.ID)
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, other, r.ID, CompleteRequest{LabourCharge: 10})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Complete(ctx, f.provider, r.ID, CompleteRequest{LabourCharge: -1})
	assert.ErrorIs(t, err, ErrNegativeCharge)

	_, err = f.svc.Complete(ctx, f.provider, r.ID, CompleteRequest{LabourCharge: 80})
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, f.provider, r.ID, CompleteRequest{LabourCharge: 90})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestComplete_RejectsOversizedCharges(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r := f.create(t)
	_, err := f.svc.Accept(ctx, f.provider, r.ID)
	require.NoError(t, err)

	huge := Charge(math.MaxFloat64)
	_, err = f.svc.Complete(ctx, f.provider, r.ID, CompleteRequest{LabourCharge: huge, PartsCharge: huge})
	assert.ErrorIs(t, err, ErrChargeTooLarge)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.svc.Complete(ctx, f.provider, r.ID, CompleteRequest{LabourCharge: Charge(math.NaN())})
	assert.ErrorIs(t, err, ErrChargeTooLarge)

	got, err := f.svc.Get(ctx, f.client, r.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestAccepted, got.Status)

	// The largest allowed charges still settle.
	ceiling := Charge(domain.MaxCharge)
	_, err = f.svc.Complete(ctx, f.provider, r.ID, CompleteRequest{LabourCharge: ceiling, PartsCharge: ceiling})
	require.NoError(t, err)
	res, err := f.svc.Pay(ctx, f.client, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 2*domain.MaxCharge, res.Earning.TotalAmount)
	assert.Equal(t, 2e8, res.Earning.Commission)
}

func TestComplete_MissingChargesAreZero(t *testing.T) {
	f := setup(t)
	r := f.completed(t, 0, 0)
	assert.Equal(t, 0.0, r.TotalAmount)
}

func TestPay_Guards(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	stranger := newUser(t, f.users, "s@x.io", domain.RoleClient)

	r := f.create(t)
	_, err := f.svc.Pay(ctx, f.client, r.ID)
	assert.ErrorIs(t, err, ErrNotCompleted)

	_, err = f.svc.Accept(ctx, f.provider, r.ID)
	require.NoError(t, err)
	_, err = f.svc.Complete(ctx, f.provider, r.ID, CompleteRequest{LabourCharge: 40})
	require.NoError(t, err)

	_, err = f.svc.Pay(ctx, stranger, r.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Pay(ctx, f.client, r.ID)
	require.NoError(t, err)

	_, err = f.svc.Pay(ctx, f.client, r.ID)
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	entries, err := f.earnings.ListByProvider(ctx, f.provider.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPay_RoundsCommissionToCents(t *testing.T) {
	f := setup(t)
	r := f.completed(t, 33.33, 0)

	res, err := f.svc.Pay(context.Background(), f.client, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 3.33, res.Earning.Commission)
	assert.Equal(t, 30.0, res.Earning.ProviderEarnings)
}

func TestBill_Visibility(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	admin := newUser(t, f.users, "admin@x.io", domain.RoleAdmin)

	r := f.create(t)
	_, err := f.svc.Bill(ctx, f.client, r.ID)
	assert.ErrorIs(t, err, ErrNotCompleted)

	r = f.completed(t, 10, 5)
	_, err = f.svc.Bill(ctx, f.provider, r.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	bill, err := f.svc.Bill(ctx, admin, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 15.0, bill.TotalAmount)
}

func TestRate_Rules(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	r := f.completed(t, 20, 0)

	_, err := f.svc.Rate(ctx, f.client, r.ID, 5)
	assert.ErrorIs(t, err, ErrNotPaid)

	_, err = f.svc.Pay(ctx, f.client, r.ID)
	require.NoError(t, err)

	for _, bad := range []int{0, 6, -1} {
		_, err = f.svc.Rate(ctx, f.client, r.ID, bad)
		assert.ErrorIs(t, err, ErrInvalidRating)
	}

	_, err = f.svc.Rate(ctx, f.provider, r.ID, 5)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.Rate(ctx, f.client, r.ID, 5)
	require.NoError(t, err)

	_, err = f.svc.Rate(ctx, f.client, r.ID, 1)
	assert.ErrorIs(t, err, ErrAlreadyRated)

	got, err := f.svc.Get(ctx, f.client, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, *got.Rating)
}

func TestCharge_UnmarshalJSON(t *testing.T) {
	cases := map[string]Charge{
		`{"labourCharge": 100, "partsCharge": "50.5"}`: 150.5,
		`{"labourCharge": "abc", "partsCharge": null}`: 0,
		`{"labourCharge": true}`:                       0,
		`{}`:                                           0,
	}
	for body, want := range cases {
		var req CompleteRequest
		require.NoError(t, json.Unmarshal([]byte(body), &req), body)
		assert.Equal(t, want, req.LabourCharge+req.PartsCharge, body)
	}
}
