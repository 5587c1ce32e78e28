package admin

import (
	"fmt"

	"fixify/internal/domain"
)

var (
	ErrProviderNotFound = fmt.Errorf("%w: provider not found", domain.ErrNotFound)
	ErrInvalidStatus    = fmt.Errorf("%w: status must be Approved or Rejected", domain.ErrValidation)
)
