package catalog

import (
	"fmt"

	"fixify/internal/domain"
)

var (
	ErrServiceExists   = fmt.Errorf("%w: service already exists", domain.ErrConflict)
	ErrServiceNotFound = fmt.Errorf("%w: service not found", domain.ErrNotFound)
)
