package servicerequest

import (
	"context"
	"errors"
	"log"
	"strings"

	"fixify/internal/domain"

	"github.com/shopspring/decimal"
)

type Service struct {
	requests  RequestRepository
	providers ProviderDirectory
	catalog   CatalogLookup
	notifs    Notifier
}

// NewService wires the lifecycle manager. notifs may be nil.
func NewService(
	requests RequestRepository,
	providers ProviderDirectory,
	catalog CatalogLookup,
	notifs Notifier,
) *Service {
	return &Service{
		requests:  requests,
		providers: providers,
		catalog:   catalog,
		notifs:    notifs,
	}
}

func (s *Service) get(ctx context.Context, id int64) (*domain.ServiceRequest, error) {
	r, err := s.requests.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrRequestNotFound
	}
	return r, err
}

// Create opens a new pending request for a client.
func (s *Service) Create(ctx context.Context, caller *domain.User, req CreateRequest) (*domain.ServiceRequest, error) {
	if !caller.IsClient() {
		return nil, ErrClientsOnly
	}

	name := strings.TrimSpace(req.ServiceName)
	location := strings.TrimSpace(req.Location)
	phone := strings.TrimSpace(req.Phone)
	if name == "" || location == "" || phone == "" {
		return nil, ErrMissingFields
	}

	// Prefer the catalog spelling so provider matching is exact, but the
	// catalog is not a foreign key: unknown names are stored as typed.
	if svc, err := s.catalog.GetByName(ctx, name); err == nil {
		name = svc.Name
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	r := &domain.ServiceRequest{
		ClientID:    caller.ID,
		ServiceName: name,
		Location:    location,
		Phone:       phone,
	}
	if err := s.requests.Create(ctx, r); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		if ids, err := s.matchingProviders(ctx, r.ServiceName); err == nil && len(ids) > 0 {
			_ = s.notifs.RequestCreated(ctx, r, ids)
		}
	}
	return r, nil
}

func (s *Service) matchingProviders(ctx context.Context, serviceName string) ([]int64, error) {
	providers, err := s.providers.ListProviders(ctx, domain.VerificationApproved)
	if err != nil {
		return nil, err
	}
	var ids []int64
	for i := range providers {
		p := &providers[i]
		if p.Availability && p.Offers(serviceName) {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

// Pending lists unclaimed requests the provider could take, newest first.
func (s *Service) Pending(ctx context.Context, caller *domain.User) ([]domain.ServiceRequest, error) {
	if !caller.IsApprovedProvider() {
		return nil, ErrNotProvider
	}
	return s.requests.ListPendingForServices(ctx, caller.ServicesOffered)
}

func (s *Service) Accepted(ctx context.Context, caller *domain.User) ([]domain.ServiceRequest, error) {
	if !caller.IsApprovedProvider() {
		return nil, ErrNotProvider
	}
	return s.requests.ListByProvider(ctx, caller.ID, domain.RequestAccepted)
}

func (s *Service) MyRequests(ctx context.Context, caller *domain.User) ([]domain.ServiceRequest, error) {
	return s.requests.ListByClient(ctx, caller.ID)
}

// Get returns a request to its client, its provider, or an admin.
func (s *Service) Get(ctx context.Context, caller *domain.User, id int64) (*domain.ServiceRequest, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsOwnedBy(caller) && !r.IsAssignedTo(caller) && !caller.IsAdmin() {
		return nil, ErrNotOwner
	}
	return r, nil
}

// Accept claims a pending request. Only one provider can win: the claim is a
// conditional update and the loser gets ErrAlreadyAccepted.
func (s *Service) Accept(ctx context.Context, caller *domain.User, id int64) (*domain.ServiceRequest, error) {
	if !caller.IsApprovedProvider() {
		return nil, ErrNotProvider
	}

	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.RequestPending || r.ProviderID != nil {
		return nil, ErrAlreadyAccepted
	}
	if !caller.Offers(r.ServiceName) {
		return nil, ErrServiceNotOffered
	}

	ok, err := s.requests.Accept(ctx, id, caller.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyAccepted
	}

	r, err = s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.notifs != nil {
		_ = s.notifs.RequestAccepted(ctx, r)
	}
	return r, nil
}

// Complete records the final charges. totalAmount is fixed from here on.
func (s *Service) Complete(ctx context.Context, caller *domain.User, id int64, req CompleteRequest) (*domain.ServiceRequest, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsAssignedTo(caller) {
		return nil, ErrNotAssigned
	}
	if r.Status != domain.RequestAccepted {
		return nil, ErrNotAccepted
	}
	if req.LabourCharge < 0 || req.PartsCharge < 0 {
		return nil, ErrNegativeCharge
	}
	if !req.LabourCharge.inRange() || !req.PartsCharge.inRange() {
		return nil, ErrChargeTooLarge
	}

	labour := decimal.NewFromFloat(float64(req.LabourCharge))
	parts := decimal.NewFromFloat(float64(req.PartsCharge))
	total := labour.Add(parts)

	ok, err := s.requests.Complete(ctx, id, caller.ID,
		labour.InexactFloat64(), parts.InexactFloat64(), total.InexactFloat64())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotAccepted
	}

	r, err = s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.notifs != nil {
		_ = s.notifs.RequestCompleted(ctx, r)
	}
	return r, nil
}

func (s *Service) Bill(ctx context.Context, caller *domain.User, id int64) (*Bill, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsOwnedBy(caller) && !caller.IsAdmin() {
		return nil, ErrNotOwner
	}
	if r.Status != domain.RequestCompleted && r.Status != domain.RequestPaid {
		return nil, ErrNotCompleted
	}

	b := &Bill{
		RequestID:     r.ID,
		ServiceName:   r.ServiceName,
		Status:        r.Status,
		LabourCharge:  r.LabourCharge,
		PartsCharge:   r.PartsCharge,
		TotalAmount:   r.TotalAmount,
		PaymentStatus: r.PaymentStatus,
	}
	if r.Provider != nil {
		b.ProviderName = r.Provider.Name
		b.ProviderPhone = r.Provider.Phone
	}
	return b, nil
}

// Pay settles a completed request: the request turns Paid and the ledger
// entry is written in the same transaction.
func (s *Service) Pay(ctx context.Context, caller *domain.User, id int64) (*PayResult, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsOwnedBy(caller) && !caller.IsAdmin() {
		return nil, ErrNotOwner
	}
	if r.IsPaid() {
		return nil, ErrAlreadyPaid
	}
	if r.Status != domain.RequestCompleted {
		return nil, ErrNotCompleted
	}

	entry, err := domain.NewSettlement(r)
	if err != nil {
		return nil, err
	}

	ok, err := s.requests.Settle(ctx, id, entry)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyPaid
	}

	log.Printf("payment settled: request_id=%d provider_id=%d total=%.2f commission=%.2f provider_earnings=%.2f by_user=%d",
		r.ID, entry.ProviderID, entry.TotalAmount, entry.Commission, entry.ProviderEarnings, caller.ID)

	r, err = s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.notifs != nil {
		_ = s.notifs.RequestPaid(ctx, r)
	}
	return &PayResult{Request: r, Earning: entry}, nil
}

// Rate lets the owning client rate a paid request once.
func (s *Service) Rate(ctx context.Context, caller *domain.User, id int64, rating int) (*domain.ServiceRequest, error) {
	if !domain.ValidRating(rating) {
		return nil, ErrInvalidRating
	}

	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !r.IsOwnedBy(caller) {
		return nil, ErrNotOwner
	}
	if r.Status != domain.RequestPaid {
		return nil, ErrNotPaid
	}
	if r.Rating != nil {
		return nil, ErrAlreadyRated
	}

	ok, err := s.requests.Rate(ctx, id, caller.ID, rating)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAlreadyRated
	}

	r, err = s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.notifs != nil {
		_ = s.notifs.RequestRated(ctx, r)
	}
	return r, nil
}
