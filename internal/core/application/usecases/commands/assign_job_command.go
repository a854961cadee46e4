package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrAssignJobCommandIsNotConstructed = errors.New(
	"AssignJobCommand must be created via NewAssignJobCommand constructor",
)

// AssignJobCommand puts a driver on a Pending Original on behalf of a
// dispatcher.
type AssignJobCommand struct { //nolint:recvcheck //using for validation
	jobID        kernel.UUID
	driverID     kernel.UUID
	dispatcherID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignJobCommand(jobID, driverID, dispatcherID kernel.UUID) (AssignJobCommand, error) {
	if err := errors.Join(jobID.Validate(), driverID.Validate(), dispatcherID.Validate()); err != nil {
		return AssignJobCommand{}, err
	}
	return AssignJobCommand{
		jobID:        jobID,
		driverID:     driverID,
		dispatcherID: dispatcherID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AssignJobCommand) Validate() error {
	return c.guard.Validate(ErrAssignJobCommandIsNotConstructed)
}

func (c AssignJobCommand) JobID() kernel.UUID        { return c.jobID }
func (c AssignJobCommand) DriverID() kernel.UUID     { return c.driverID }
func (c AssignJobCommand) DispatcherID() kernel.UUID { return c.dispatcherID }
