package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrDeleteOwnApplicationCommandIsNotConstructed = errors.New(
	"DeleteOwnApplicationCommand must be created via NewDeleteOwnApplicationCommand constructor",
)

// DeleteOwnApplicationCommand lets a driver clear one of their settled offers
// from their list.
type DeleteOwnApplicationCommand struct { //nolint:recvcheck //using for validation
	offerID  job.OfferID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteOwnApplicationCommand(offerID string, driverID kernel.UUID) (DeleteOwnApplicationCommand, error) {
	id, idErr := job.OfferIDFromString(offerID)
	if err := errors.Join(idErr, driverID.Validate()); err != nil {
		return DeleteOwnApplicationCommand{}, err
	}
	return DeleteOwnApplicationCommand{offerID: id, driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteOwnApplicationCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOwnApplicationCommandIsNotConstructed)
}

func (c DeleteOwnApplicationCommand) OfferID() job.OfferID  { return c.offerID }
func (c DeleteOwnApplicationCommand) DriverID() kernel.UUID { return c.driverID }
