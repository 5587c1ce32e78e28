package servicerequest

import (
	"context"

	"fixify/internal/domain"
)

type RequestRepository interface {
	Create(ctx context.Context, r *domain.ServiceRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ServiceRequest, error)
	ListPendingForServices(ctx context.Context, serviceNames []string) ([]domain.ServiceRequest, error)
	ListByProvider(ctx context.Context, providerID int64, status domain.RequestStatus) ([]domain.ServiceRequest, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.ServiceRequest, error)
	Accept(ctx context.Context, id, providerID int64) (bool, error)
	Complete(ctx context.Context, id, providerID int64, labour, parts, total float64) (bool, error)
	Settle(ctx context.Context, id int64, entry *domain.ProviderEarning) (bool, error)
	Rate(ctx context.Context, id, clientID int64, rating int) (bool, error)
}

type ProviderDirectory interface {
	ListProviders(ctx context.Context, status domain.VerificationStatus) ([]domain.User, error)
}

type CatalogLookup interface {
	GetByName(ctx context.Context, name string) (*domain.Service, error)
}

// Notifier is told about lifecycle changes after they are stored.
type Notifier interface {
	RequestCreated(ctx context.Context, r *domain.ServiceRequest, providerIDs []int64) error
	RequestAccepted(ctx context.Context, r *domain.ServiceRequest) error
	RequestCompleted(ctx context.Context, r *domain.ServiceRequest) error
	RequestPaid(ctx context.Context, r *domain.ServiceRequest) error
	RequestRated(ctx context.Context, r *domain.ServiceRequest) error
}
