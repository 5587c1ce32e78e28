package repository

import (
	"context"
	"strings"
	"time"

	"fixify/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID                 int64     `gorm:"column:id;primaryKey"`
	Name               string    `gorm:"column:name;not null"`
	Email              string    `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash       string    `gorm:"column:password_hash;not null"`
	Phone              *string   `gorm:"column:phone"`
	Address            *string   `gorm:"column:address"`
	Role               string    `gorm:"column:role;not null;index"`
	VerificationStatus *string   `gorm:"column:verification_status;index"`
	ServicesOffered    []string  `gorm:"column:services_offered;type:text;serializer:json"`
	Experience         int       `gorm:"column:experience;not null"`
	Documents          int       `gorm:"column:documents;not null"`
	Availability       bool      `gorm:"column:availability;not null"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:                 m.ID,
		Name:               m.Name,
		Email:              m.Email,
		PasswordHash:       m.PasswordHash,
		Phone:              strVal(m.Phone),
		Address:            strVal(m.Address),
		Role:               domain.UserRole(m.Role),
		VerificationStatus: domain.VerificationStatus(strVal(m.VerificationStatus)),
		ServicesOffered:    m.ServicesOffered,
		Experience:         m.Experience,
		Documents:          m.Documents,
		Availability:       m.Availability,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              normalizeEmail(u.Email),
		PasswordHash:       u.PasswordHash,
		Phone:              strPtr(u.Phone),
		Address:            strPtr(u.Address),
		Role:               string(u.Role),
		VerificationStatus: strPtr(string(u.VerificationStatus)),
		ServicesOffered:    u.ServicesOffered,
		Experience:         u.Experience,
		Documents:          u.Documents,
		Availability:       u.Availability,
		CreatedAt:          u.CreatedAt,
		UpdatedAt:          u.UpdatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err, "user")
	}
	*u = *toDomainUser(m)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err, "user")
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		First(&m).Error
	if err != nil {
		return nil, translate(err, "user")
	}
	return toDomainUser(m), nil
}

// Update writes every mutable profile column of u.
func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	m.UpdatedAt = time.Now()
	err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", u.ID).
		Select("name", "email", "password_hash", "phone", "address", "experience", "availability", "updated_at").
		Updates(&m).Error
	if err != nil {
		return translate(err, "user")
	}
	u.Email = m.Email
	u.UpdatedAt = m.UpdatedAt
	return nil
}

// ListProviders returns providers, optionally narrowed to one verification
// status, newest first.
func (r *UserRepository) ListProviders(ctx context.Context, status domain.VerificationStatus) ([]domain.User, error) {
	q := r.db.WithContext(ctx).Where("role = ?", string(domain.RoleProvider))
	if status != "" {
		q = q.Where("verification_status = ?", string(status))
	}

	var rows []userModel
	if err := q.Order("created_at desc, id desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainUser(m))
	}
	return out, nil
}

func (r *UserRepository) SetVerificationStatus(ctx context.Context, providerID int64, status domain.VerificationStatus) (*domain.User, error) {
	res := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ? AND role = ?", providerID, string(domain.RoleProvider)).
		Update("verification_status", string(status))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, translate(gorm.ErrRecordNotFound, "provider")
	}
	return r.GetByID(ctx, providerID)
}

func (r *UserRepository) CountByRole(ctx context.Context) (map[domain.UserRole]int64, error) {
	var rows []struct {
		Role  string
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[domain.UserRole]int64, len(rows))
	for _, row := range rows {
		out[domain.UserRole(row.Role)] = row.Count
	}
	return out, nil
}
