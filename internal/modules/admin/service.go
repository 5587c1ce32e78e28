package admin

import (
	"context"
	"errors"
	"log"

	"fixify/internal/domain"
	"fixify/internal/modules/earnings"
)

type Service struct {
	users    UserRepository
	requests RequestRepository
	reports  Reporter
	notifs   NotificationSender
}

func NewService(
	users UserRepository,
	requests RequestRepository,
	reports Reporter,
	notifs NotificationSender,
) *Service {
	return &Service{
		users:    users,
		requests: requests,
		reports:  reports,
		notifs:   notifs,
	}
}

// Providers lists provider accounts, optionally filtered by verification
// status. An empty status returns all of them.
func (s *Service) Providers(ctx context.Context, status string) ([]domain.User, error) {
	vs := domain.VerificationStatus(status)
	if status != "" && !vs.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.users.ListProviders(ctx, vs)
}

// VerifyProvider approves or rejects a provider. Repeating a decision is
// allowed and simply rewrites the same status.
func (s *Service) VerifyProvider(ctx context.Context, adminID int64, req VerifyProviderRequest) (*domain.User, error) {
	status := domain.VerificationStatus(req.Status)
	if status != domain.VerificationApproved && status != domain.VerificationRejected {
		return nil, ErrInvalidStatus
	}

	provider, err := s.users.SetVerificationStatus(ctx, req.ProviderID, status)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, err
	}

	log.Printf("admin action: verify_provider admin_id=%d provider_id=%d status=%s", adminID, provider.ID, status)

	if s.notifs != nil {
		_ = s.notifs.ProviderVerified(ctx, provider)
	}
	return provider, nil
}

// Bookings returns every request with client and provider contacts.
func (s *Service) Bookings(ctx context.Context) ([]domain.ServiceRequest, error) {
	return s.requests.List(ctx, "")
}

func (s *Service) PendingBookings(ctx context.Context) ([]domain.ServiceRequest, error) {
	return s.requests.List(ctx, domain.RequestPending)
}

func (s *Service) Earnings(ctx context.Context) (*earnings.Report, error) {
	return s.reports.Report(ctx)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	users, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	requests, err := s.requests.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.users.ListProviders(ctx, domain.VerificationPending)
	if err != nil {
		return nil, err
	}
	report, err := s.reports.Report(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Users:            users,
		Requests:         requests,
		PendingProviders: int64(len(pending)),
		TotalRevenue:     report.TotalRevenue,
		TotalCommission:  report.TotalCommission,
	}, nil
}
