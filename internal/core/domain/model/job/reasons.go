package job

import "errors"

// Reasons carried by InvalidState and Unauthorized errors. Callers match them
// with errors.Is through the wrapping error.
var (
	ErrJobIsNotOriginal      = errors.New("job is not an original")
	ErrJobIsNotOffer         = errors.New("job is not an offer")
	ErrJobIsNotPending       = errors.New("job is not pending")
	ErrJobIsNotPublic        = errors.New("job is not public")
	ErrJobIsAlreadyAssigned  = errors.New("job is already assigned")
	ErrJobIsAlreadyCompleted = errors.New("job is already completed")
	ErrJobIsAlreadyCancelled = errors.New("job is already cancelled")
	ErrTransitionNotAllowed  = errors.New("status transition is not allowed")

	ErrOfferIsNotPending   = errors.New("offer is not pending")
	ErrOfferIsStillPending = errors.New("offer is still pending")
	ErrOfferHasNoOriginal  = errors.New("offer has no original job")
	ErrAlreadyApplied      = errors.New("driver already applied")

	ErrNotJobOwner            = errors.New("actor is neither the creator nor the owning company")
	ErrNotAssignedDriver      = errors.New("actor is not the assigned driver")
	ErrNotOfferDriver         = errors.New("actor is not the driver of the offer")
	ErrDriverRoleRequired     = errors.New("driver role required")
	ErrCreatorRoleRequired    = errors.New("dispatcher or company role required")
	ErrDispatcherRoleRequired = errors.New("dispatcher role required")
)
