package auth

import "fixify/internal/domain"

type RegisterClientRequest struct {
	Name     string `json:"name" validate:"required,notblank,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"required,notblank"`
	Address  string `json:"address" validate:"required,notblank"`
}

type RegisterProviderRequest struct {
	Name            string   `json:"name" validate:"required,notblank,min=2"`
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=6"`
	Phone           string   `json:"phone" validate:"required,notblank"`
	Address         string   `json:"address" validate:"required,notblank"`
	ServicesOffered []string `json:"servicesOffered" validate:"required,min=1,dive,required"`
	Experience      int      `json:"experience" validate:"gte=0"`
	Documents       int      `json:"documents" validate:"gte=0"`
	Availability    *bool    `json:"availability"`
}

type RegisterAdminRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest fields left empty keep their current value.
type UpdateProfileRequest struct {
	Name         string `json:"name" validate:"omitempty,min=2"`
	Email        string `json:"email" validate:"omitempty,email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	Password     string `json:"password" validate:"omitempty,min=6"`
	Experience   *int   `json:"experience" validate:"omitempty,gte=0"`
	Availability *bool  `json:"availability"`
}

type LoginResult struct {
	User  *domain.User
	Token string
}

type UserPublic struct {
	ID                 int64                     `json:"id"`
	Name               string                    `json:"name"`
	Email              string                    `json:"email"`
	Role               domain.UserRole           `json:"role"`
	VerificationStatus domain.VerificationStatus `json:"verificationStatus,omitempty"`
}

func toPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		VerificationStatus: u.VerificationStatus,
	}
}
