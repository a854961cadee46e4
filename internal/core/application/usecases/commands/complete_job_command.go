package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCompleteJobCommandIsNotConstructed = errors.New(
	"CompleteJobCommand must be created via NewCompleteJobCommand constructor",
)

type CompleteJobCommand struct { //nolint:recvcheck //using for validation
	jobID    kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteJobCommand(jobID kernel.UUID, driverID kernel.UUID) (CompleteJobCommand, error) {
	if err := errors.Join(jobID.Validate(), driverID.Validate()); err != nil {
		return CompleteJobCommand{}, err
	}
	return CompleteJobCommand{jobID: jobID, driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (c CompleteJobCommand) Validate() error {
	return c.guard.Validate(ErrCompleteJobCommandIsNotConstructed)
}

func (c CompleteJobCommand) JobID() kernel.UUID    { return c.jobID }
func (c CompleteJobCommand) DriverID() kernel.UUID { return c.driverID }
