package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrCancelJobCommandIsNotConstructed = errors.New(
	"CancelJobCommand must be created via NewCancelJobCommand constructor",
)

type CancelJobCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelJobCommand(jobID kernel.UUID, actorID kernel.UUID) (CancelJobCommand, error) {
	if err := errors.Join(jobID.Validate(), actorID.Validate()); err != nil {
		return CancelJobCommand{}, err
	}
	return CancelJobCommand{jobID: jobID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c CancelJobCommand) Validate() error {
	return c.guard.Validate(ErrCancelJobCommandIsNotConstructed)
}

func (c CancelJobCommand) JobID() kernel.UUID   { return c.jobID }
func (c CancelJobCommand) ActorID() kernel.UUID { return c.actorID }
