package domain

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleClient   UserRole = "client"
	RoleProvider UserRole = "provider"
	RoleAdmin    UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleClient, RoleProvider, RoleAdmin:
		return true
	}
	return false
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "Pending"
	VerificationApproved VerificationStatus = "Approved"
	VerificationRejected VerificationStatus = "Rejected"
)

func (s VerificationStatus) Valid() bool {
	switch s {
	case VerificationPending, VerificationApproved, VerificationRejected:
		return true
	}
	return false
}

type User struct {
	ID                 int64              `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	PasswordHash       string             `json:"-"`
	Phone              string             `json:"phone,omitempty"`
	Address            string             `json:"address,omitempty"`
	Role               UserRole           `json:"role"`
	VerificationStatus VerificationStatus `json:"verificationStatus,omitempty"`
	ServicesOffered    []string           `json:"servicesOffered,omitempty"`
	Experience         int                `json:"experience,omitempty"`
	Documents          int                `json:"documents,omitempty"`
	Availability       bool               `json:"availability"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) IsClient() bool {
	return u != nil && u.Role == RoleClient
}

// IsApprovedProvider reports whether u may take work.
func (u *User) IsApprovedProvider() bool {
	return u != nil && u.Role == RoleProvider && u.VerificationStatus == VerificationApproved
}

// Offers matches serviceName against the provider's offered services,
// ignoring case.
func (u *User) Offers(serviceName string) bool {
	if u == nil {
		return false
	}
	for _, s := range u.ServicesOffered {
		if strings.EqualFold(s, serviceName) {
			return true
		}
	}
	return false
}

// UserContact is the name/phone snapshot attached to request views.
type UserContact struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

func (u *User) Contact() *UserContact {
	if u == nil {
		return nil
	}
	return &UserContact{ID: u.ID, Name: u.Name, Phone: u.Phone}
}
