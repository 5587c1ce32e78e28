package admin

import (
	"context"

	"fixify/internal/domain"
	"fixify/internal/modules/earnings"
)

type UserRepository interface {
	ListProviders(ctx context.Context, status domain.VerificationStatus) ([]domain.User, error)
	SetVerificationStatus(ctx context.Context, providerID int64, status domain.VerificationStatus) (*domain.User, error)
	CountByRole(ctx context.Context) (map[domain.UserRole]int64, error)
}

type RequestRepository interface {
	List(ctx context.Context, status domain.RequestStatus) ([]domain.ServiceRequest, error)
	CountByStatus(ctx context.Context) (map[domain.RequestStatus]int64, error)
}

type Reporter interface {
	Report(ctx context.Context) (*earnings.Report, error)
}

type NotificationSender interface {
	ProviderVerified(ctx context.Context, provider *domain.User) error
}
