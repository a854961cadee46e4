package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateCopiedOfferCommandIsNotConstructed = errors.New(
	"CreateCopiedOfferCommand must be created via NewCreateCopiedOfferCommand constructor",
)

// CreateCopiedOfferCommand pushes an Original to one driver with one of
// their vehicles. The driver answers with accept or reject.
type CreateCopiedOfferCommand struct { //nolint:recvcheck //using for validation
	originalID  kernel.UUID
	actorID     kernel.UUID
	driverID    kernel.UUID
	vehicleID   kernel.UUID
	driverName  string
	driverPhone string

	guard guard.ConstructorGuard
}

func NewCreateCopiedOfferCommand(
	originalID kernel.UUID,
	actorID kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	driverName string,
	driverPhone string,
) (CreateCopiedOfferCommand, error) {
	if err := errors.Join(
		originalID.Validate(),
		actorID.Validate(),
		driverID.Validate(),
		vehicleID.Validate(),
	); err != nil {
		return CreateCopiedOfferCommand{}, err
	}

	return CreateCopiedOfferCommand{
		originalID:  originalID,
		actorID:     actorID,
		driverID:    driverID,
		vehicleID:   vehicleID,
		driverName:  driverName,
		driverPhone: driverPhone,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCopiedOfferCommand) Validate() error {
	return c.guard.Validate(ErrCreateCopiedOfferCommandIsNotConstructed)
}

func (c CreateCopiedOfferCommand) OriginalID() kernel.UUID { return c.originalID }
func (c CreateCopiedOfferCommand) ActorID() kernel.UUID    { return c.actorID }
func (c CreateCopiedOfferCommand) DriverID() kernel.UUID   { return c.driverID }
func (c CreateCopiedOfferCommand) VehicleID() kernel.UUID  { return c.vehicleID }
func (c CreateCopiedOfferCommand) DriverName() string      { return c.driverName }
func (c CreateCopiedOfferCommand) DriverPhone() string     { return c.driverPhone }
