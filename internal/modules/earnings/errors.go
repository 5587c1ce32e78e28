package earnings

import (
	"fmt"

	"fixify/internal/domain"
)

var (
	ErrInvalidAmount = fmt.Errorf("%w: withdrawal amount must be greater than zero", domain.ErrValidation)
	ErrNotProvider   = fmt.Errorf("%w: only approved providers can proceed", domain.ErrForbidden)
)
