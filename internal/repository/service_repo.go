package repository

import (
	"context"
	"strings"
	"time"

	"fixify/internal/domain"

	"gorm.io/gorm"
)

// ServiceRepository stores the service catalog.
type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

type serviceModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;not null;uniqueIndex"`
	Description string    `gorm:"column:description"`
	Category    string    `gorm:"column:category;index"`
	PriceRange  string    `gorm:"column:price_range"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (serviceModel) TableName() string { return "services" }

func toDomainService(m serviceModel) domain.Service {
	return domain.Service{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Category:    m.Category,
		PriceRange:  m.PriceRange,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	m := serviceModel{
		Name:        strings.TrimSpace(s.Name),
		Description: s.Description,
		Category:    s.Category,
		PriceRange:  s.PriceRange,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err, "service")
	}
	*s = toDomainService(m)
	return nil
}

// GetByName looks a service up ignoring case.
func (r *ServiceRepository) GetByName(ctx context.Context, name string) (*domain.Service, error) {
	var m serviceModel
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&m).Error
	if err != nil {
		return nil, translate(err, "service")
	}
	s := toDomainService(m)
	return &s, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]domain.Service, error) {
	var rows []serviceModel
	if err := r.db.WithContext(ctx).Order("name asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Service, 0, len(rows))
	for _, m := range rows {
		out = append(out, toDomainService(m))
	}
	return out, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	err := r.db.WithContext(ctx).
		Model(&serviceModel{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{
			"name":        strings.TrimSpace(s.Name),
			"description": s.Description,
			"category":    s.Category,
			"price_range": s.PriceRange,
		}).Error
	return translate(err, "service")
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&serviceModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, "service")
	}
	return nil
}
