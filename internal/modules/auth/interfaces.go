package auth

import (
	"context"

	"fixify/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
}

// ServiceCatalog is the part of the catalog provider sign-up checks against.
type ServiceCatalog interface {
	List(ctx context.Context) ([]domain.Service, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}
