package servicerequest

import (
	"fmt"

	"fixify/internal/domain"
)

var (
	ErrMissingFields     = fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	ErrNegativeCharge    = fmt.Errorf("%w: charges cannot be negative", domain.ErrValidation)
	ErrChargeTooLarge    = fmt.Errorf("%w: charges cannot exceed %.0f each", domain.ErrValidation, domain.MaxCharge)
	ErrInvalidRating     = fmt.Errorf("%w: rating must be between 1 and 5", domain.ErrValidation)
	ErrNotPaid           = fmt.Errorf("%w: you can only rate after payment", domain.ErrValidation)
	ErrRequestNotFound   = fmt.Errorf("%w: service request not found", domain.ErrNotFound)
	ErrClientsOnly       = fmt.Errorf("%w: only clients can create service requests", domain.ErrForbidden)
	ErrNotProvider       = fmt.Errorf("%w: only approved providers can proceed", domain.ErrForbidden)
	ErrServiceNotOffered = fmt.Errorf("%w: you do not offer this service", domain.ErrForbidden)
	ErrNotAssigned       = fmt.Errorf("%w: you can only complete your assigned requests", domain.ErrForbidden)
	ErrNotOwner          = fmt.Errorf("%w: you can only access your own requests", domain.ErrForbidden)
	ErrAlreadyAccepted   = fmt.Errorf("%w: request is already accepted", domain.ErrConflict)
	ErrAlreadyRated      = fmt.Errorf("%w: request has already been rated", domain.ErrConflict)
	ErrNotAccepted       = fmt.Errorf("%w: request is not in an accepted state", domain.ErrInvalidState)
	ErrNotCompleted      = fmt.Errorf("%w: request is not completed yet", domain.ErrInvalidState)
	ErrAlreadyPaid       = fmt.Errorf("%w: request is already paid", domain.ErrInvalidState)
)
