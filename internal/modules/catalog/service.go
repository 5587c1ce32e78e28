package catalog

import (
	"context"
	"errors"
	"strings"

	"fixify/internal/domain"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]domain.Service, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, name string) (*domain.Service, error) {
	svc, err := s.repo.GetByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrServiceNotFound
	}
	return svc, err
}

func (s *Service) Create(ctx context.Context, req CreateServiceRequest) (*domain.Service, error) {
	name := strings.TrimSpace(req.Name)
	if _, err := s.repo.GetByName(ctx, name); err == nil {
		return nil, ErrServiceExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	svc := &domain.Service{
		Name:        name,
		Description: req.Description,
		Category:    req.Category,
		PriceRange:  req.PriceRange,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrServiceExists
		}
		return nil, err
	}
	return svc, nil
}

// Update renames or edits the service called name. Renaming does not touch
// requests or provider profiles that still refer to the old name.
func (s *Service) Update(ctx context.Context, name string, req UpdateServiceRequest) (*domain.Service, error) {
	svc, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(req.Name); v != "" && v != svc.Name {
		if other, err := s.repo.GetByName(ctx, v); err == nil && other.ID != svc.ID {
			return nil, ErrServiceExists
		}
		svc.Name = v
	}
	if req.Description != "" {
		svc.Description = req.Description
	}
	if req.Category != "" {
		svc.Category = req.Category
	}
	if req.PriceRange != "" {
		svc.PriceRange = req.PriceRange
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrServiceExists
		}
		return nil, err
	}
	return svc, nil
}

func (s *Service) Delete(ctx context.Context, name string) error {
	svc, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, svc.ID)
}
