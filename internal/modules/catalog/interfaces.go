package catalog

import (
	"context"

	"fixify/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByName(ctx context.Context, name string) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id int64) error
}
