package auth

import (
	"fmt"

	"fixify/internal/domain"
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	ErrEmailAlreadyExists = fmt.Errorf("%w: user already exists", domain.ErrConflict)
	ErrMissingContact     = fmt.Errorf("%w: name, phone and address are required", domain.ErrValidation)
	ErrNoServices         = fmt.Errorf("%w: providers must offer at least one service", domain.ErrValidation)
	ErrAdminKey           = fmt.Errorf("%w: admin registration key is missing or wrong", domain.ErrForbidden)
)

func unknownServices(names []string) error {
	return fmt.Errorf("%w: unknown services: %v", domain.ErrValidation, names)
}
