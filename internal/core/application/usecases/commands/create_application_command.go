package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCreateApplicationCommandIsNotConstructed = errors.New(
	"CreateApplicationCommand must be created via NewCreateApplicationCommand constructor",
)

// CreateApplicationCommand files a driver's request to take a public
// Original with one of their vehicles.
type CreateApplicationCommand struct { //nolint:recvcheck //using for validation
	originalID  kernel.UUID
	driverID    kernel.UUID
	vehicleID   kernel.UUID
	driverName  string
	driverPhone string

	guard guard.ConstructorGuard
}

func NewCreateApplicationCommand(
	originalID kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	driverName string,
	driverPhone string,
) (CreateApplicationCommand, error) {
	if err := errors.Join(originalID.Validate(), driverID.Validate(), vehicleID.Validate()); err != nil {
		return CreateApplicationCommand{}, err
	}

	return CreateApplicationCommand{
		originalID:  originalID,
		driverID:    driverID,
		vehicleID:   vehicleID,
		driverName:  driverName,
		driverPhone: driverPhone,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateApplicationCommand) Validate() error {
	return c.guard.Validate(ErrCreateApplicationCommandIsNotConstructed)
}

func (c CreateApplicationCommand) OriginalID() kernel.UUID { return c.originalID }
func (c CreateApplicationCommand) DriverID() kernel.UUID   { return c.driverID }
func (c CreateApplicationCommand) VehicleID() kernel.UUID  { return c.vehicleID }
func (c CreateApplicationCommand) DriverName() string      { return c.driverName }
func (c CreateApplicationCommand) DriverPhone() string     { return c.driverPhone }
